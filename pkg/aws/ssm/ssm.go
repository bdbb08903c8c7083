package ssm

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	GetSecret(ctx context.Context, name string) (string, error)
}

type Client struct {
	mu        sync.Mutex
	cfg       *aws.Config
	ssmClient ssmiface.SSMAPI
	session   *session.Session
}

func New(region string) *Client {
	cfg := aws.NewConfig()
	if region != "" {
		cfg.WithRegion(region)
	}
	return &Client{
		cfg: cfg,
	}
}

// Connect is a no-op once a session exists, so warm invocations reuse it.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil
	}

	awsSession, err := session.NewSession(c.cfg)
	if err != nil {
		return err
	}
	c.session = awsSession
	c.ssmClient = ssm.New(c.session, c.cfg)
	return nil
}

// GetSecret reads a parameter with decryption, so SecureString values come
// back in plain text.
func (c *Client) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := c.ssmClient.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	} else if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter has no value: [%s]", name)
	}
	return *out.Parameter.Value, nil
}
