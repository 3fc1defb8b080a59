package db

import (
	"gorm.io/gorm"
)

// QueryExecutor runs raw analytic queries that do not map onto a single
// model, returning rows as generic maps.
type QueryExecutor struct {
	DB *gorm.DB
}

func NewQueryExecutor(conn *gorm.DB) *QueryExecutor {
	return &QueryExecutor{DB: conn}
}

// Select executes a raw select query and returns the results.
func (qe *QueryExecutor) Select(query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := qe.DB.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []map[string]interface{}{}
	cols, _ := rows.Columns()
	for rows.Next() {
		rowData := make([]interface{}, len(cols))
		scanArgs := make([]interface{}, len(cols))
		for i := range rowData {
			scanArgs[i] = &rowData[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			record[col] = rowData[i]
		}
		results = append(results, record)
	}
	return results, rows.Err()
}
