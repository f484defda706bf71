package testing

import (
	"context"
	"os"

	server_app "github.com/karasai/karasai-be/src/server/application"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// IntegrationEnvVar opts suites into running against a local DynamoDB
const IntegrationEnvVar = "KARASAI_INTEGRATION"

func IntegrationEnabled() bool {
	return os.Getenv(IntegrationEnvVar) != ""
}

// SkipWithoutIntegration skips the current test unless a local DynamoDB is
// available
func SkipWithoutIntegration() {
	if !IntegrationEnabled() {
		Skip("set " + IntegrationEnvVar + " to run against a local DynamoDB")
	}
}

func MakeTestDB(testRegion string) dynamolib.DynamoDBWrapper {
	return dynamolib.NewDynamoDB(DynamoConfig(testRegion))
}

func ResetDB(db dynamolib.DynamoDBWrapper) {
	DeleteAllTables(db)
	err := server_app.EnsureTables(context.Background(), db)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

func DeleteAllTables(db dynamolib.DynamoDBWrapper) {
	tableNames := ExpectSuccess(db.ListTables().All())

	for _, tableName := range tableNames {
		err := db.Table(tableName).DeleteTable().Run()
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
	}
}
