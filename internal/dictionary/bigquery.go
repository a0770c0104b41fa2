package dictionary

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQuerySource loads dictionary rows of (word, frequency, definitions) from a
// BigQuery table. Definitions is expected to be a REPEATED STRING column.
type BigQuerySource struct {
	ProjectID string
	// Table is the fully qualified table name, e.g. "project.dataset.dictionary".
	Table    string
	Location string
}

func (s BigQuerySource) query(scope string, minFrequency int) string {
	q := fmt.Sprintf("SELECT word, frequency, definitions FROM `%s` WHERE frequency >= %d", s.Table, minFrequency)
	if scope != "" {
		q += fmt.Sprintf(" AND scope = %q", scope)
	}
	return q
}

// Load runs the query for scope (empty means every scope) and returns the
// rows as a Dictionary. Rows with invalid words or no definitions are skipped.
func (s BigQuerySource) Load(ctx context.Context, scope string, minFrequency int) (Dictionary, error) {
	client, err := bigquery.NewClient(ctx, s.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(s.query(scope, minFrequency))
	q.Location = s.Location
	if q.Location == "" {
		q.Location = "US"
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	d := make(Dictionary)
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, entry, err := entryFromRow(row)
		if err != nil {
			return nil, err
		}
		key, err := Normalize(word)
		if err != nil || len(entry.Definitions) == 0 {
			continue
		}
		d.add(key, entry.Frequency, entry.Definitions...)
	}
	return d, nil
}

func entryFromRow(row []bigquery.Value) (string, Entry, error) {
	if len(row) != 3 {
		return "", Entry{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	word, ok := row[0].(string)
	if !ok {
		return "", Entry{}, fmt.Errorf("row[0] is not a string: %v", row[0])
	}
	frequency, ok := row[1].(int64)
	if !ok {
		return "", Entry{}, fmt.Errorf("row[1] is not an integer: %v", row[1])
	}
	var definitions []string
	switch defs := row[2].(type) {
	case nil:
	case []bigquery.Value:
		for _, v := range defs {
			s, ok := v.(string)
			if !ok {
				return "", Entry{}, fmt.Errorf("definition is not a string: %v", v)
			}
			definitions = append(definitions, s)
		}
	case string:
		definitions = []string{defs}
	default:
		return "", Entry{}, fmt.Errorf("row[2] is not a list of strings: %v", row[2])
	}
	return word, Entry{Frequency: int(frequency), Definitions: definitions}, nil
}
