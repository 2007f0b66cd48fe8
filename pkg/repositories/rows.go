package repositories

import (
	"fmt"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
)

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const eventColumns = "id, action, legal, reason, has_digipet, happiness, nutrition, discipline, timestamp"

func scanEvent(row rowScanner) (*messages.Event, error) {
	var (
		id         string
		action     string
		hasDigipet bool
		pet        digipet.Pet
	)
	event := &messages.Event{}
	if err := row.Scan(&id, &action, &event.Legal, &event.Reason, &hasDigipet, &pet.Happiness, &pet.Nutrition, &pet.Discipline, &event.Timestamp); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event id %q: %v", id, err)
	}
	event.ID = parsedID
	event.Action = digipet.Action(action)
	if hasDigipet {
		event.Digipet = &pet
	}
	return event, nil
}

// eventValues flattens an event into the order of eventColumns.
func eventValues(e *messages.Event) []any {
	var pet digipet.Pet
	if e.Digipet != nil {
		pet = *e.Digipet
	}
	return []any{e.ID.String(), string(e.Action), e.Legal, e.Reason, e.Digipet != nil, pet.Happiness, pet.Nutrition, pet.Discipline, e.Timestamp}
}
