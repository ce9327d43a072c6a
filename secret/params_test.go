package secret

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSSM struct {
	got *ssm.GetParameterInput
	out *ssm.GetParameterOutput
	err error
}

func (s *stubSSM) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	s.got = params
	return s.out, s.err
}

func parameterValue(v string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}
}

func TestParamsNaming(t *testing.T) {
	testcases := []struct {
		desc     string
		vault    string
		key      string
		wantName string
	}{
		{
			desc:     "plain key goes under the vault",
			vault:    "httpkit/prod",
			key:      "db-password",
			wantName: "/httpkit/prod/db-password",
		},
		{
			desc:     "vault slashes are normalized",
			vault:    "/httpkit/prod/",
			key:      "db-password",
			wantName: "/httpkit/prod/db-password",
		},
		{
			desc:     "absolute path bypasses the vault",
			vault:    "httpkit/prod",
			key:      "/shared/api-key",
			wantName: "/shared/api-key",
		},
		{
			desc:     "no vault means root",
			vault:    "",
			key:      "api-key",
			wantName: "/api-key",
		},
		{
			desc:     "parameter ARN passes through",
			vault:    "httpkit/prod",
			key:      "arn:aws:ssm:us-east-1:123456789012:parameter/team/github-token",
			wantName: "/team/github-token",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			stub := &stubSSM{out: parameterValue("value")}
			p := NewParamsWithClient(stub, tc.vault)

			v, err := p.Get(context.Background(), tc.key)
			require.NoError(t, err)
			assert.Equal(t, "value", v)

			require.NotNil(t, stub.got)
			require.NotNil(t, stub.got.Name)
			assert.Equal(t, tc.wantName, *stub.got.Name)
			require.NotNil(t, stub.got.WithDecryption)
			assert.True(t, *stub.got.WithDecryption)
		})
	}
}

func TestParamsNotFound(t *testing.T) {
	stub := &stubSSM{err: &types.ParameterNotFound{}}
	p := NewParamsWithClient(stub, "vault")

	_, err := p.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParamsEmptyParameter(t *testing.T) {
	stub := &stubSSM{out: &ssm.GetParameterOutput{}}
	p := NewParamsWithClient(stub, "vault")

	_, err := p.Get(context.Background(), "hollow")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParamsBackendError(t *testing.T) {
	cause := errors.New("throttled")
	stub := &stubSSM{err: cause}
	p := NewParamsWithClient(stub, "vault")

	_, err := p.Get(context.Background(), "key")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
}
