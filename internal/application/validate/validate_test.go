package validate_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/dto"
	"github.com/ledgerdesk/ledgerdesk-api/internal/application/validate"
)

func TestStruct_ValidDocumentRequest(t *testing.T) {
	val := validate.New()
	in := dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1", Quantity: decimal.NewFromInt(2), UnitAmount: decimal.NewFromInt(10)},
		},
	}
	assert.NoError(t, val.Struct(in))
}

func TestStruct_MissingLinesReported(t *testing.T) {
	val := validate.New()
	in := dto.CreateDocumentRequest{PartyID: "cust-1"}

	err := val.Struct(in)
	require.Error(t, err)

	var verrs *validate.Errors
	require.True(t, errors.As(err, &verrs), "validation failures must carry field details")
	require.Len(t, verrs.Fields, 1)
	assert.Equal(t, "lines", verrs.Fields[0].Field, "field names must use the json tag")
	assert.Equal(t, "is required", verrs.Fields[0].Message)
}

func TestStruct_NegativeDecimalRejected(t *testing.T) {
	val := validate.New()
	in := dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Paid:    decimal.NewFromInt(-5),
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: "prod-1"},
		},
	}

	err := val.Struct(in)
	require.Error(t, err)

	var verrs *validate.Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Fields, 1)
	assert.Equal(t, "paid_amount", verrs.Fields[0].Field,
		"decimal fields must participate in numeric rules")
}

func TestStruct_NestedLineValidation(t *testing.T) {
	val := validate.New()
	in := dto.CreateDocumentRequest{
		PartyID: "cust-1",
		Lines: []dto.DocumentLineRequest{
			{ReferenceID: ""},
		},
	}

	err := val.Struct(in)
	require.Error(t, err)

	var verrs *validate.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "reference_id", verrs.Fields[0].Field,
		"dive must descend into line entries")
}
