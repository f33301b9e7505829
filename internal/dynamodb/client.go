package dynamodb

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/facturio/facturio/internal/config"
	ierr "github.com/facturio/facturio/internal/errors"
)

// Client wraps the DynamoDB SDK client together with the table names
// the application operates on.
type Client struct {
	db            *dynamodb.Client
	clientsTable  string
	invoicesTable string
}

func NewClient(cfg *config.Configuration) (*Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.DynamoDB.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Impossible de charger la configuration AWS").
			Mark(ierr.ErrSystem)
	}

	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// local endpoint override, used against dynamodb-local in dev
		if cfg.DynamoDB.Endpoint != "" {
			o.BaseEndpoint = &cfg.DynamoDB.Endpoint
		}
	})

	return &Client{
		db:            db,
		clientsTable:  cfg.DynamoDB.ClientsTable,
		invoicesTable: cfg.DynamoDB.InvoicesTable,
	}, nil
}

func (c *Client) DB() *dynamodb.Client {
	return c.db
}

func (c *Client) ClientsTable() string {
	return c.clientsTable
}

func (c *Client) InvoicesTable() string {
	return c.invoicesTable
}
