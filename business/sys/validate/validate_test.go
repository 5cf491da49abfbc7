package validate_test

import (
	"fmt"
	"testing"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NewTx(t *testing.T) {
	amount := 0.0

	tests := []struct {
		name   string
		tx     network.NewTx
		fields []string
	}{
		{
			name: "complete",
			tx:   network.NewTx{Sender: "bill", Recipient: "ale", Amount: &amount},
		},
		{
			name:   "missing amount",
			tx:     network.NewTx{Sender: "bill", Recipient: "ale"},
			fields: []string{"amount"},
		},
		{
			name:   "missing everything",
			tx:     network.NewTx{},
			fields: []string{"sender", "recipient", "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Check(tt.tx)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.True(t, validate.IsFieldErrors(err))

			fields := validate.GetFieldErrors(err).Fields()
			assert.Len(t, fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Equal(t, f+" is a required field", fields[f])
			}
		})
	}
}

func TestCheck_Register(t *testing.T) {
	err := validate.Check(network.RegisterRequest{})
	require.Error(t, err)
	assert.Contains(t, validate.GetFieldErrors(err).Fields(), "nodes")

	err = validate.Check(network.RegisterRequest{Nodes: []string{}})
	require.Error(t, err)

	err = validate.Check(network.RegisterRequest{Nodes: []string{"localhost:9081", ""}})
	require.Error(t, err)
	assert.Contains(t, validate.GetFieldErrors(err).Fields(), "nodes[1]")

	require.NoError(t, validate.Check(network.RegisterRequest{Nodes: []string{"localhost:9081"}}))
}

func TestFieldErrors(t *testing.T) {
	err := fmt.Errorf("validating: %w", validate.FieldErrors{{Field: "sender", Err: "sender is a required field"}})

	assert.True(t, validate.IsFieldErrors(err))
	assert.JSONEq(t, `[{"field":"sender","error":"sender is a required field"}]`, validate.GetFieldErrors(err).Error())
	assert.False(t, validate.IsFieldErrors(fmt.Errorf("plain")))
	assert.Nil(t, validate.GetFieldErrors(fmt.Errorf("plain")))
}
