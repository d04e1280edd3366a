package problemsrvc

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"
)

// ProblemRow is the DynamoDB shape of a stored problem.
type ProblemRow struct {
	ID            string        `dynamo:"id,hash"` // Primary key
	Title         string        `dynamo:"title"`
	FuncSignature string        `dynamo:"func_signature"`
	SmartCompare  bool          `dynamo:"smart_compare"`
	TestCases     []TestCaseRow `dynamo:"test_cases"`
}

// TestCaseRow stores small test cases inline as JSON text; oversized
// payloads live in S3 and the row carries only the object key.
type TestCaseRow struct {
	InputJson    string  `dynamo:"input_json"`
	ExpectedJson string  `dynamo:"expected_json"`
	IsExample    bool    `dynamo:"is_example"`
	BlobS3Key    *string `dynamo:"blob_s3_key"`
}

// DynamoDbProblemTable wraps the problems DynamoDB table.
type DynamoDbProblemTable struct {
	ddbClient     *dynamodb.Client
	tableName     string
	problemsTable *dynamo.Table
}

func NewDynamoDbProblemTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbProblemTable {
	ddb := &DynamoDbProblemTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.problemsTable = &table

	return ddb
}

// Get retrieves a problem row by id; a missing row returns (nil, nil).
func (ddb *DynamoDbProblemTable) Get(ctx context.Context, id string) (*ProblemRow, error) {
	row := new(ProblemRow)

	err := ddb.problemsTable.Get("id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return row, nil
}

func (ddb *DynamoDbProblemTable) List(ctx context.Context) ([]*ProblemRow, error) {
	var rows []*ProblemRow
	err := ddb.problemsTable.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (ddb *DynamoDbProblemTable) Save(ctx context.Context, row *ProblemRow) error {
	return ddb.problemsTable.Put(row).Run(ctx)
}
