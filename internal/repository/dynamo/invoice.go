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
	"github.com/shopspring/decimal"

	"github.com/facturio/facturio/internal/domain/invoice"
	"github.com/facturio/facturio/internal/dynamodb"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/types"
)

type invoiceRepository struct {
	client *dynamodb.Client
	log    *logger.Logger
}

func NewInvoiceRepository(db *dynamodb.Client, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		client: db,
		log:    log,
	}
}

// invoiceRow is the DynamoDB shape of an invoice document. Monetary amounts
// are stored as decimal strings to survive the round trip without float
// precision loss.
type invoiceRow struct {
	ID         string        `dynamodbav:"id"`
	Number     string        `dynamodbav:"numero"`
	IssueDate  string        `dynamodbav:"date_creation"`
	DueDate    *string       `dynamodbav:"date_echeance,omitempty"`
	ClientID   string        `dynamodbav:"client_id"`
	ClientName string        `dynamodbav:"client_nom"`
	Items      []lineItemRow `dynamodbav:"items"`
	Subtotal   string        `dynamodbav:"sous_total"`
	TaxRate    string        `dynamodbav:"taux_tva"`
	TaxAmount  string        `dynamodbav:"montant_tva"`
	Total      string        `dynamodbav:"total"`
	Status     string        `dynamodbav:"statut"`
	Notes      *string       `dynamodbav:"notes,omitempty"`
	CreatedAt  string        `dynamodbav:"created_at"`
	UpdatedAt  string        `dynamodbav:"updated_at"`
}

type lineItemRow struct {
	Description string `dynamodbav:"description"`
	Quantity    string `dynamodbav:"quantite"`
	UnitPrice   string `dynamodbav:"prix_unitaire"`
	Total       string `dynamodbav:"total"`
}

func toInvoiceRow(inv *invoice.Invoice) *invoiceRow {
	items := make([]lineItemRow, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = lineItemRow{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.String(),
			Total:       item.Total.String(),
		}
	}

	var dueDate *string
	if inv.DueDate != nil {
		dueDate = aws.String(inv.DueDate.Format(types.DateFormat))
	}

	return &invoiceRow{
		ID:         inv.ID,
		Number:     inv.Number,
		IssueDate:  inv.IssueDate.Format(types.DateFormat),
		DueDate:    dueDate,
		ClientID:   inv.ClientID,
		ClientName: inv.ClientName,
		Items:      items,
		Subtotal:   inv.Subtotal.String(),
		TaxRate:    inv.TaxRate.String(),
		TaxAmount:  inv.TaxAmount.String(),
		Total:      inv.Total.String(),
		Status:     string(inv.Status),
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  inv.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fromInvoiceRow(row *invoiceRow) (*invoice.Invoice, error) {
	corrupt := func(err error) error {
		return ierr.WithError(err).
			WithHint("Document facture corrompu").
			WithReportableDetails(map[string]any{"invoice_id": row.ID}).
			Mark(ierr.ErrDatabase)
	}

	issueDate, err := types.ParseDate(row.IssueDate)
	if err != nil {
		return nil, corrupt(err)
	}

	var dueDate *types.Date
	if row.DueDate != nil {
		d, err := types.ParseDate(*row.DueDate)
		if err != nil {
			return nil, corrupt(err)
		}
		dueDate = &d
	}

	items := make([]*invoice.LineItem, len(row.Items))
	for i, item := range row.Items {
		quantity, err := decimal.NewFromString(item.Quantity)
		if err != nil {
			return nil, corrupt(err)
		}
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, corrupt(err)
		}
		total, err := decimal.NewFromString(item.Total)
		if err != nil {
			return nil, corrupt(err)
		}
		items[i] = &invoice.LineItem{
			Description: item.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Total:       total,
		}
	}

	subtotal, err := decimal.NewFromString(row.Subtotal)
	if err != nil {
		return nil, corrupt(err)
	}
	taxRate, err := decimal.NewFromString(row.TaxRate)
	if err != nil {
		return nil, corrupt(err)
	}
	taxAmount, err := decimal.NewFromString(row.TaxAmount)
	if err != nil {
		return nil, corrupt(err)
	}
	total, err := decimal.NewFromString(row.Total)
	if err != nil {
		return nil, corrupt(err)
	}

	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, corrupt(err)
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, corrupt(err)
	}

	return &invoice.Invoice{
		ID:         row.ID,
		Number:     row.Number,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		ClientID:   row.ClientID,
		ClientName: row.ClientName,
		Items:      items,
		Subtotal:   subtotal,
		TaxRate:    taxRate,
		TaxAmount:  taxAmount,
		Total:      total,
		Status:     types.InvoiceStatus(row.Status),
		Notes:      row.Notes,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.log.Debugw("creating invoice", "invoice_id", inv.ID, "numero", inv.Number)

	item, err := attributevalue.MarshalMap(toInvoiceRow(inv))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible d'enregistrer la facture").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.client.InvoicesTable()),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible d'enregistrer la facture").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	out, err := r.client.DB().GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.client.InvoicesTable()),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Impossible de lire la facture").
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewError("invoice not found").
			WithHint("Facture non trouvée").
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrNotFound)
	}

	var row invoiceRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Document facture corrompu").
			Mark(ierr.ErrDatabase)
	}
	return fromInvoiceRow(&row)
}

// List scans the whole table and orders newest first in process.
func (r *invoiceRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	rows, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := fromInvoiceRow(&rows[i])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})

	return paginate(invoices, filter), nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil, nil)
}

func (r *invoiceRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(ctx,
		aws.String("client_id = :cid"),
		map[string]ddbtypes.AttributeValue{
			":cid": &ddbtypes.AttributeValueMemberS{Value: clientID},
		},
	)
}

// LatestNumber folds the lexical maximum invoice number over a projected
// scan. Zero padding makes that the numeric maximum up to FAC-999999; past
// the padded width longer numbers sort below it and the sequence restarts
// from the padded maximum. Mirrors the historical allocation behavior.
func (r *invoiceRepository) LatestNumber(ctx context.Context) (*string, error) {
	var latest *string
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:            aws.String(r.client.InvoicesTable()),
			ProjectionExpression: aws.String("#n"),
			ExpressionAttributeNames: map[string]string{
				"#n": "numero",
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Impossible de déterminer le dernier numéro de facture").
				Mark(ierr.ErrDatabase)
		}

		var page []struct {
			Number string `dynamodbav:"numero"`
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Document facture corrompu").
				Mark(ierr.ErrDatabase)
		}
		for _, item := range page {
			if latest == nil || item.Number > *latest {
				latest = aws.String(item.Number)
			}
		}

		if out.LastEvaluatedKey == nil {
			return latest, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// StatusBreakdown folds per-status counts and total sums over a projected
// scan, ordered by status token for a stable response.
func (r *invoiceRepository) StatusBreakdown(ctx context.Context) ([]*invoice.StatusAggregate, error) {
	counts := make(map[types.InvoiceStatus]int)
	sums := make(map[types.InvoiceStatus]decimal.Decimal)

	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:            aws.String(r.client.InvoicesTable()),
			ProjectionExpression: aws.String("#s, #t"),
			ExpressionAttributeNames: map[string]string{
				"#s": "statut",
				"#t": "total",
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Impossible d'agréger les factures").
				Mark(ierr.ErrDatabase)
		}

		var page []struct {
			Status string `dynamodbav:"statut"`
			Total  string `dynamodbav:"total"`
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Document facture corrompu").
				Mark(ierr.ErrDatabase)
		}
		for _, item := range page {
			total, err := decimal.NewFromString(item.Total)
			if err != nil {
				return nil, ierr.WithError(err).
					WithHint("Document facture corrompu").
					Mark(ierr.ErrDatabase)
			}
			status := types.InvoiceStatus(item.Status)
			counts[status]++
			sums[status] = sums[status].Add(total)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	statuses := make([]types.InvoiceStatus, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	aggregates := make([]*invoice.StatusAggregate, 0, len(statuses))
	for _, status := range statuses {
		aggregates = append(aggregates, &invoice.StatusAggregate{
			Status:      status,
			Count:       counts[status],
			TotalAmount: sums[status],
		})
	}
	return aggregates, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	item, err := attributevalue.MarshalMap(toInvoiceRow(inv))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Impossible de mettre à jour la facture").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(r.client.InvoicesTable()),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ierr.WithError(err).
				WithHint("Facture non trouvée").
				WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Impossible de mettre à jour la facture").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	r.log.Debugw("deleting invoice", "invoice_id", id)

	_, err := r.client.DB().DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.client.InvoicesTable()),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ierr.WithError(err).
				WithHint("Facture non trouvée").
				WithReportableDetails(map[string]any{"invoice_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Impossible de supprimer la facture").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) count(ctx context.Context, filterExpr *string, values map[string]ddbtypes.AttributeValue) (int, error) {
	total := 0
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:                 aws.String(r.client.InvoicesTable()),
			Select:                    ddbtypes.SelectCount,
			FilterExpression:          filterExpr,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return 0, ierr.WithError(err).
				WithHint("Impossible de compter les factures").
				Mark(ierr.ErrDatabase)
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *invoiceRepository) scanAll(ctx context.Context) ([]invoiceRow, error) {
	var rows []invoiceRow
	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := r.client.DB().Scan(ctx, &awsdynamodb.ScanInput{
			TableName:         aws.String(r.client.InvoicesTable()),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Impossible de lister les factures").
				Mark(ierr.ErrDatabase)
		}

		var page []invoiceRow
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Document facture corrompu").
				Mark(ierr.ErrDatabase)
		}
		rows = append(rows, page...)

		if out.LastEvaluatedKey == nil {
			return rows, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
