package ssm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	ssmiface.SSMAPI
	out *ssm.GetParameterOutput
	err error
	in  *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameterWithContext(_ aws.Context, in *ssm.GetParameterInput, _ ...request.Option) (*ssm.GetParameterOutput, error) {
	f.in = in
	return f.out, f.err
}

func Test_New(t *testing.T) {
	c := New("us-east-1")
	require.NotNil(t, c)
	assert.Equal(t, "us-east-1", aws.StringValue(c.cfg.Region))
}

func Test_Client_GetSecret(t *testing.T) {
	mockErr := errors.New("mock error")
	tests := []struct {
		name     string
		out      *ssm.GetParameterOutput
		err      error
		expValue string
		expErr   bool
	}{
		{
			name:     "Happy path - Decrypted value",
			out:      &ssm.GetParameterOutput{Parameter: &ssm.Parameter{Value: aws.String("the-key")}},
			expValue: "the-key",
		},
		{
			name:   "Sad path - AWS error",
			err:    mockErr,
			expErr: true,
		},
		{
			name:   "Sad path - No parameter",
			out:    &ssm.GetParameterOutput{},
			expErr: true,
		},
		{
			name:   "Sad path - No value",
			out:    &ssm.GetParameterOutput{Parameter: &ssm.Parameter{}},
			expErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSSM{out: tt.out, err: tt.err}
			c := Client{ssmClient: fake}

			value, err := c.GetSecret(context.Background(), "/game/key")

			require.NotNil(t, fake.in)
			assert.Equal(t, "/game/key", aws.StringValue(fake.in.Name))
			assert.True(t, aws.BoolValue(fake.in.WithDecryption))
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expValue, value)
		})
	}
}
