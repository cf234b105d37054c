package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm() Form {
	return Form{
		CardNumber: "1234 5678 9012 3456",
		Expiry:     "12/27",
		CVV:        "123",
		Address:    "12 MG Road, Hyderabad",
	}
}

func TestForm_MissingField(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Form)
		want string
	}{
		{"complete", func(f *Form) {}, ""},
		{"no card", func(f *Form) { f.CardNumber = "" }, "card number"},
		{"no expiry", func(f *Form) { f.Expiry = "  " }, "expiry date"},
		{"no cvv", func(f *Form) { f.CVV = "" }, "CVV"},
		{"no address", func(f *Form) { f.Address = "" }, "delivery address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := completeForm()
			tt.mut(&f)
			assert.Equal(t, tt.want, f.MissingField())
			assert.Equal(t, tt.want == "", f.Complete())
		})
	}
}

func TestFlow_HappyPath(t *testing.T) {
	fl := NewFlow()
	require.Equal(t, Reviewing, fl.State())

	fl.BeginPayment()
	require.Equal(t, CollectingPayment, fl.State())

	require.NoError(t, fl.BeginSubmit(completeForm()))
	assert.True(t, fl.InFlight())

	fl.Complete()
	assert.Equal(t, Confirmed, fl.State())
	assert.False(t, fl.InFlight())
	assert.NoError(t, fl.Err())

	fl.Reset()
	assert.Equal(t, Reviewing, fl.State())
}

func TestFlow_MissingAddressBlocksSubmit(t *testing.T) {
	fl := NewFlow()
	fl.BeginPayment()

	f := completeForm()
	f.Address = ""
	err := fl.BeginSubmit(f)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	// Flow stays put indefinitely; nothing was submitted.
	assert.Equal(t, CollectingPayment, fl.State())
	assert.False(t, fl.InFlight())
}

func TestFlow_SecondSubmitRejectedWhileInFlight(t *testing.T) {
	fl := NewFlow()
	fl.BeginPayment()
	require.NoError(t, fl.BeginSubmit(completeForm()))

	err := fl.BeginSubmit(completeForm())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
}

func TestFlow_FailStaysCollectingWithVisibleError(t *testing.T) {
	fl := NewFlow()
	fl.BeginPayment()
	require.NoError(t, fl.BeginSubmit(completeForm()))

	boom := errors.New("api unreachable")
	fl.Fail(boom)

	assert.Equal(t, CollectingPayment, fl.State())
	assert.False(t, fl.InFlight())
	assert.ErrorIs(t, fl.Err(), boom)

	// A retry is allowed after the failure and clears the error.
	require.NoError(t, fl.BeginSubmit(completeForm()))
	assert.NoError(t, fl.Err())
}

func TestFlow_SubmitOnlyFromCollectingPayment(t *testing.T) {
	fl := NewFlow()
	err := fl.BeginSubmit(completeForm())
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	fl.BeginPayment()
	require.NoError(t, fl.BeginSubmit(completeForm()))
	fl.Complete()
	assert.Error(t, fl.BeginSubmit(completeForm()), "confirmed is terminal for the attempt")
}

func TestFlow_BackToCartBlockedWhileInFlight(t *testing.T) {
	fl := NewFlow()
	fl.BeginPayment()
	require.NoError(t, fl.BeginSubmit(completeForm()))

	fl.BackToCart()
	assert.Equal(t, CollectingPayment, fl.State())

	fl.Fail(errors.New("timeout"))
	fl.BackToCart()
	assert.Equal(t, Reviewing, fl.State())
	assert.NoError(t, fl.Err())
}
