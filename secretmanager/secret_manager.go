package secretmanager

import (
	"context"
	"fmt"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

const (
	latestVersion = "latest"
)

type versionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Client reads secrets from google secret manager and keeps them for the process lifetime.
type Client struct {
	sm    versionAccessor
	close func() error

	mutex sync.Mutex
	state map[string][]byte
}

func NewClient(ctx context.Context) (*Client, error) {
	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	c := newClient(sm)
	c.close = sm.Close

	return c, nil
}

func newClient(sm versionAccessor) *Client {
	return &Client{
		sm:    sm,
		state: make(map[string][]byte),
	}
}

// AccessSecret fetches the payload of the latest version of a secret.
func (c *Client) AccessSecret(ctx context.Context, projectID, secret string) ([]byte, error) {
	return c.AccessSecretVersion(ctx, projectID, secret, latestVersion)
}

// AccessSecretVersion fetch payload of a secret's version
func (c *Client) AccessSecretVersion(ctx context.Context, projectID, secret, version string) ([]byte, error) {
	name := secretResourceName(projectID, secret, version)

	c.mutex.Lock()
	v, prs := c.state[name]
	c.mutex.Unlock()

	if prs {
		return v, nil
	}

	accessSecretVersionRes, err := c.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	data := accessSecretVersionRes.GetPayload().GetData()

	c.mutex.Lock()
	c.state[name] = data
	c.mutex.Unlock()

	return data, nil
}

func (c *Client) Close() error {
	if c.close == nil {
		return nil
	}

	return c.close()
}

func secretResourceName(projectID, secret, version string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", projectID, secret, version)
}
