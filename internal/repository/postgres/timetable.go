package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/pkg/database"
)

// TimetableRepository implements repository.TimetableRepository using PostgreSQL.
type TimetableRepository struct {
	pool database.DBTX
}

// NewTimetableRepository creates a new PostgreSQL-backed timetable repository.
func NewTimetableRepository(pool database.DBTX) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

func (r *TimetableRepository) ListForDay(ctx context.Context, studentID int64, day string) (entries []domain.TimetableEntry, err error) {
	query, args, err := psql.
		Select(
			"t.id", "t.student_id", "t.course_id", "t.day_of_week",
			"to_char(t.start_time, 'HH24:MI')", "to_char(t.end_time, 'HH24:MI')",
			"COALESCE(t.room, '')", "c.course_code", "c.course_name",
			"COALESCE(c.lecturer, '')", "COALESCE(c.colour, '')",
		).
		From("timetable t").
		Join("courses c ON c.id = t.course_id").
		Where(sq.Eq{"t.student_id": studentID}).
		Where(sq.ILike{"t.day_of_week": day}).
		OrderBy("t.start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build timetable query: %w", err)
	}

	ctx, end := database.TraceQuery(ctx, "ListTimetable", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	defer rows.Close()

	entries = []domain.TimetableEntry{}
	for rows.Next() {
		var e domain.TimetableEntry
		err = rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.DayOfWeek,
			&e.StartTime, &e.EndTime, &e.Room,
			&e.CourseCode, &e.CourseName, &e.Lecturer, &e.Colour)
		if err != nil {
			return nil, fmt.Errorf("scan timetable entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timetable: %w", err)
	}
	return entries, nil
}
