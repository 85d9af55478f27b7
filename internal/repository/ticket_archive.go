package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/chatbot-service/internal/domain"
)

// TicketArchive writes committed tickets to postgres. The archive is a
// best-effort audit trail: the in-memory store stays the lookup source
// and archive failures never fail a commit.
type TicketArchive struct {
	pool *pgxpool.Pool
}

// NewTicketArchive instantiates the archive over an existing pool.
func NewTicketArchive(pool *pgxpool.Pool) *TicketArchive {
	return &TicketArchive{pool: pool}
}

// EnsureSchema creates the archive table when it does not exist. Ticket
// ids are not unique, so the table has no primary key on ticket_id.
func (a *TicketArchive) EnsureSchema(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS ticket_archive (
            ticket_id       TEXT        NOT NULL,
            feedback_type   TEXT        NOT NULL,
            location        TEXT        NOT NULL,
            message         TEXT        NOT NULL,
            email           TEXT        NOT NULL,
            sentiment       TEXT        NOT NULL,
            sentiment_score INT         NOT NULL,
            assigned_staff  TEXT        NOT NULL,
            status          TEXT        NOT NULL,
            created_at      TIMESTAMPTZ NOT NULL
        )`
	_, err := a.pool.Exec(ctx, ddl)
	return err
}

// Save inserts one ticket row.
func (a *TicketArchive) Save(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO ticket_archive (ticket_id, feedback_type, location, message, email, sentiment, sentiment_score, assigned_staff, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := a.pool.Exec(ctx, query,
		ticket.ID,
		ticket.FeedbackType,
		ticket.Location,
		ticket.Message,
		ticket.Email,
		ticket.Sentiment,
		ticket.SentimentScore,
		ticket.AssignedStaff,
		ticket.Status,
		ticket.CreatedAt,
	)
	return err
}
