package secret

import (
	"context"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/pkg/errors"
)

// Client is the slice of the SSM API the provider calls. Satisfied by
// *ssm.Client; replaced with a stub in tests.
type Client interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Parameter ARNs pass through unchanged:
// arn:aws:ssm:<region>:<account>:parameter/<path>
var paramARNPattern = regexp.MustCompile(`^arn:aws:ssm:[^:]+:[^:]+:parameter/(.+)$`)

// Params resolves secrets from AWS SSM Parameter Store. Plain keys address
// parameters under the vault as /{vault}/{key}; absolute paths and full
// parameter ARNs bypass the vault. Values are decrypted on read.
type Params struct {
	client Client
	vault  string
}

func NewParams(ctx context.Context, vault string) (*Params, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return NewParamsWithClient(ssm.NewFromConfig(cfg), vault), nil
}

func NewParamsWithClient(client Client, vault string) *Params {
	return &Params{client: client, vault: strings.Trim(vault, "/")}
}

func (p *Params) Get(ctx context.Context, key string) (string, error) {
	name := p.parameterName(key)

	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", errors.Wrapf(ErrNotFound, "parameter %s", name)
		}
		return "", errors.Wrapf(err, "getting parameter %s", name)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.Wrapf(ErrNotFound, "parameter %s has no value", name)
	}
	return aws.ToString(out.Parameter.Value), nil
}

func (p *Params) parameterName(key string) string {
	if m := paramARNPattern.FindStringSubmatch(key); len(m) == 2 {
		name := m[1]
		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}
		return name
	}
	if strings.HasPrefix(key, "/") {
		return key
	}
	if p.vault == "" {
		return "/" + key
	}
	return "/" + p.vault + "/" + key
}
