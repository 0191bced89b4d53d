package repositories

import (
	"context"
	"database/sql"

	intdb "github.com/Tripcarte/easytix-booking/internal/db"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

const participantTable = "booking_participants"

// structural columns are owned by the store, never by a participant record.
var structuralColumns = map[string]bool{
	"id":         true,
	"booking_id": true,
	"idx":        true,
	"created_at": true,
	"updated_at": true,
}

// ParticipantSchemaRepository describes the participant record type from the
// live table definition.
type ParticipantSchemaRepository struct {
	DB *sql.DB
}

func (r ParticipantSchemaRepository) ParticipantSchema(ctx context.Context) (models.ParticipantSchema, error) {
	cols, err := intdb.ListColumns(ctx, r.DB, participantTable)
	if err != nil {
		return models.ParticipantSchema{}, storageErr("load participant schema", err)
	}
	fields := make([]models.SchemaField, 0, len(cols))
	for _, c := range cols {
		if structuralColumns[c.Name] {
			continue
		}
		fields = append(fields, models.SchemaField{Name: c.Name, Type: c.DataType})
	}
	return models.NewParticipantSchema(fields), nil
}
