package dataset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockchart/internal/modules/dataset"
	testingpkg "github.com/aristath/stockchart/internal/testing"
)

func TestLoader_SQLiteMatchesCSV(t *testing.T) {
	log := testingpkg.NopLogger()
	loader := dataset.NewLoader(dataset.RowPolicyStrict, log)
	loader.Register("file", dataset.NewFileSource(log))
	loader.Register("sqlite", dataset.NewSQLiteSource(log))

	fromCSV, err := loader.Load(context.Background(), testingpkg.WriteCSV(t, testingpkg.SampleCSV))
	require.NoError(t, err)

	path := testingpkg.NewHistoryDB(t, testingpkg.NewRecordFixtures())
	fromDB, err := loader.Load(context.Background(), "sqlite://"+path)
	require.NoError(t, err)

	require.Equal(t, fromCSV.Len(), fromDB.Len())
	csvRecords, dbRecords := fromCSV.Records(), fromDB.Records()
	for i := range csvRecords {
		assert.True(t, csvRecords[i].Date.Equal(dbRecords[i].Date))
		assert.Equal(t, csvRecords[i].Stock, dbRecords[i].Stock)
		assert.True(t, csvRecords[i].Price.Equal(dbRecords[i].Price), "row %d", i)
	}
	assert.Equal(t, fromCSV.Symbols(), fromDB.Symbols())
}
