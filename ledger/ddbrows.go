package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// HistoryRow is the DynamoDB shape of a HistoryRecord. The dedup key
// is the hash key so LastForKey is a single descending query.
type HistoryRow struct {
	SubmKey      string `dynamo:"subm_key,hash"` // "{slug}#{language}"
	UnixMillis   int64  `dynamo:"unix_millis,range"`
	Uuid         string `dynamo:"uuid"`
	ProblemSlug  string `dynamo:"problem_slug"`
	ProblemTitle string `dynamo:"problem_title"`
	Language     string `dynamo:"language"`
	Category     string `dynamo:"category"`
	Path         string `dynamo:"path"`
	RemoteUrl    string `dynamo:"remote_url"`
	SourceUrl    string `dynamo:"source_url"`
}

// DynamoDbHistoryTable persists history records in DynamoDB.
type DynamoDbHistoryTable struct {
	ddbClient    *dynamodb.Client
	tableName    string
	historyTable *dynamo.Table
}

// NewDynamoDbHistoryTable initializes a new DynamoDbHistoryTable.
func NewDynamoDbHistoryTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbHistoryTable {
	ddb := &DynamoDbHistoryTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.historyTable = &table

	return ddb
}

func rowFromRecord(rec HistoryRecord) HistoryRow {
	return HistoryRow{
		SubmKey:      rec.DedupKey(),
		UnixMillis:   rec.SubmittedAt.UnixMilli(),
		Uuid:         rec.ID.String(),
		ProblemSlug:  rec.ProblemSlug,
		ProblemTitle: rec.ProblemTitle,
		Language:     rec.Language,
		Category:     rec.Category,
		Path:         rec.Path,
		RemoteUrl:    rec.RemoteURL,
		SourceUrl:    rec.SourceURL,
	}
}

func recordFromRow(row HistoryRow) HistoryRecord {
	id, _ := uuid.Parse(row.Uuid)
	return HistoryRecord{
		ID:           id,
		ProblemSlug:  row.ProblemSlug,
		ProblemTitle: row.ProblemTitle,
		Language:     row.Language,
		Category:     row.Category,
		Path:         row.Path,
		RemoteURL:    row.RemoteUrl,
		SourceURL:    row.SourceUrl,
		SubmittedAt:  time.UnixMilli(row.UnixMillis).UTC(),
	}
}

// Insert implements Repo
func (ddb *DynamoDbHistoryTable) Insert(ctx context.Context, rec HistoryRecord) error {
	row := rowFromRecord(rec)
	if err := ddb.historyTable.Put(row).Run(ctx); err != nil {
		return fmt.Errorf("failed to put history row: %w", err)
	}
	return nil
}

// List implements Repo
func (ddb *DynamoDbHistoryTable) List(ctx context.Context) ([]HistoryRecord, error) {
	var rows []HistoryRow
	if err := ddb.historyTable.Scan().All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to scan history table: %w", err)
	}
	recs := make([]HistoryRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, recordFromRow(row))
	}
	return recs, nil
}

// LastForKey implements Repo
func (ddb *DynamoDbHistoryTable) LastForKey(ctx context.Context, key string) (*HistoryRecord, error) {
	var row HistoryRow
	err := ddb.historyTable.Get("subm_key", key).
		Order(dynamo.Descending).
		Limit(1).
		One(ctx, &row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query history by key: %w", err)
	}
	rec := recordFromRow(row)
	return &rec, nil
}
