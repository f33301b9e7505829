package dynamo

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"

	"github.com/facturio/facturio/internal/domain/client"
	"github.com/facturio/facturio/internal/dynamodb"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/types"
)

type clientRepository struct {
	client *dynamodb.Client
	log    *logger.Logger
}

func NewClientRepository(db *dynamodb.Client, log *logger.Logger) client.Repository {
	return &clientRepository{
		client: db,
		log:    log,
	}
}

// clientRow is the DynamoDB shape of a client document. Attribute names
// match the public wire contract so documents stay readable in the console.
type clientRow struct {
	ID         string  `dynamodbav:"id"`
	Name       string  `dynamodbav:"nom"`
	Email      *string `dynamodbav:"email,omitempty"`
	Phone      *string `dynamodbav:"telephone,omitempty"`
	Address    *string `dynamodbav:"adresse,omitempty"`
	City       *string `dynamodbav:"ville,omitempty"`
	PostalCode *string `dynamodbav:"code_postal,omitempty"`
	Country    string  `dynamodbav:"pays"`
	CreatedAt  string  `dynamodbav:"created_at"`
}

func toClientRow(c *client.Client) *clientRow {
	return &clientRow{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func fromClientRow(row *clientRow) (*client.Client, error) {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Document client corrompu").
			WithReportableDetails(map[string]any{"client_id": row.ID}).
			Mark(ierr.ErrDatabase)
	}

	return &client.Client{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		Address:    row.Address,
		City:       row.City,
		PostalCode: row.PostalCode,
		Country:    row.Country,
		CreatedAt:  createdAt,
	}, nil
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	r.log.Debugw("creating client", "client_id", c.ID)

	item, err := attributevalue.MarshalMap(toClientRow(c))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible d'enregistrer le client").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.client.ClientsTable()),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible d'enregistrer le client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	out, err := r.client.DB().GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.client.ClientsTable()),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Impossible de lire le client").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("client not found").
			WithHint("Client non trouvé").
			WithReportableDetails(map[string]any{"client_id": id}).
			Mark(ierr.ErrNotFound)
	}

	var row clientRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Document client corrompu").
			Mark(ierr.ErrDatabase)
	}
	return fromClientRow(&row)
}

// List scans the whole table and sorts in process. The directory is small
// enough that a scan stays cheap; revisit with a GSI if that stops holding.
func (r *clientRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*client.Client, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	rows, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]*client.Client, 0, len(rows))
	for i := range rows {
		c, err := fromClientRow(&rows[i])
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Name < clients[j].Name
	})

	return paginate(clients, filter), nil
}

func (r *clientRepository) Count(ctx context.Context) (int, error) {
	total := 0
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:         aws.String(r.client.ClientsTable()),
			Select:            ddbtypes.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, ierr.WithError(err).
				WithHint("Impossible de compter les clients").
				Mark(ierr.ErrDatabase)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	item, err := attributevalue.MarshalMap(toClientRow(c))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible de mettre à jour le client").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(r.client.ClientsTable()),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ierr.WithError(err).
				WithHint("Client non trouvé").
				WithReportableDetails(map[string]any{"client_id": c.ID}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Impossible de mettre à jour le client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	r.log.Debugw("deleting client", "client_id", id)

	_, err := r.client.DB().DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.client.ClientsTable()),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ierr.WithError(err).
				WithHint("Client non trouvé").
				WithReportableDetails(map[string]any{"client_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Impossible de supprimer le client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) scanAll(ctx context.Context) ([]clientRow, error) {
	var rows []clientRow
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:         aws.String(r.client.ClientsTable()),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Impossible de lister les clients").
				Mark(ierr.ErrDatabase)
		}

		var page []clientRow
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Document client corrompu").
				Mark(ierr.ErrDatabase)
		}
		rows = append(rows, page...)

		if out.LastEvaluatedKey == nil {
			return rows, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// paginate applies the filter's offset and limit to an already sorted slice.
func paginate[T any](items []T, filter *types.QueryFilter) []T {
	if filter.IsUnlimited() {
		return items
	}

	offset := filter.GetOffset()
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]

	limit := filter.GetLimit()
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
