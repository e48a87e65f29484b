package repository

import (
    "context"
    "database/sql"
    "fmt"
    "strconv"
    "strings"
)

// ScheduleRepo provides access to the train_schedule table and its joins
// against stations.
type ScheduleRepo struct{ db *sql.DB }

// NewScheduleRepo returns a new ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// ScheduleRow is the wire shape of a schedule with joined station names.
// Departure and arrival are clock strings in "HH:MM:SS" form.
type ScheduleRow struct {
    ID             uint64 `json:"id"`
    TrainName      string `json:"train_name"`
    Source         string `json:"source"`
    Destination    string `json:"destination"`
    DepartureTime  string `json:"departure_time"`
    ArrivalTime    string `json:"arrival_time"`
    AvailableSeats uint32 `json:"available_seats"`
}

// NewSchedule carries the fields required to create a schedule.
type NewSchedule struct {
    TrainName            string `json:"train_name"`
    SourceStationID      uint64 `json:"source_station_id"`
    DestinationStationID uint64 `json:"destination_station_id"`
    DepartureTime        string `json:"departure_time"`
    ArrivalTime          string `json:"arrival_time"`
    TotalSeats           uint32 `json:"total_seats"`
}

const scheduleSelect = `SELECT s.schedule_id, s.train_name,
       ss.station_name, ds.station_name,
       s.departure_time, s.arrival_time, s.total_seats
FROM train_schedule s
JOIN stations ss ON s.source_station_id = ss.station_id
JOIN stations ds ON s.destination_station_id = ds.station_id`

// List returns all schedules with joined source and destination names.
func (r *ScheduleRepo) List(ctx context.Context) ([]ScheduleRow, error) {
    rows, err := r.db.QueryContext(ctx, scheduleSelect)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ScheduleRow, 0)
    for rows.Next() {
        s, err := scanScheduleRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// GetByID returns one schedule or ErrScheduleNotFound.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*ScheduleRow, error) {
    row := r.db.QueryRowContext(ctx, scheduleSelect+" WHERE s.schedule_id = ?", id)
    s, err := scanScheduleRow(row.Scan)
    if err == sql.ErrNoRows {
        return nil, ErrScheduleNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// Create inserts a schedule and returns its ID.
func (r *ScheduleRepo) Create(ctx context.Context, in NewSchedule) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO train_schedule
         (train_name, source_station_id, destination_station_id, departure_time, arrival_time, total_seats)
         VALUES (?,?,?,?,?,?)`,
        in.TrainName, in.SourceStationID, in.DestinationStationID,
        in.DepartureTime, in.ArrivalTime, in.TotalSeats)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// scanScheduleRow scans one joined schedule row and normalizes the TIME
// columns.  Taking the Scan func lets it serve both *sql.Row and *sql.Rows.
func scanScheduleRow(scan func(...any) error) (ScheduleRow, error) {
    var s ScheduleRow
    var dep, arr []byte // TIME columns arrive as raw bytes
    if err := scan(&s.ID, &s.TrainName, &s.Source, &s.Destination, &dep, &arr, &s.AvailableSeats); err != nil {
        return ScheduleRow{}, err
    }
    s.DepartureTime = formatClock(string(dep))
    s.ArrivalTime = formatClock(string(arr))
    return s, nil
}

// formatClock normalizes a MySQL TIME string to zero-padded "HH:MM:SS".
// Six hours past midnight always renders as "06:00:00" no matter how the
// driver spells it ("6:00:00", "06:00", ...).
func formatClock(raw string) string {
    parts := strings.Split(strings.TrimSpace(raw), ":")
    if len(parts) < 2 || len(parts) > 3 {
        return raw
    }
    var hms [3]int
    for i, p := range parts {
        n, err := strconv.Atoi(p)
        if err != nil || n < 0 {
            return raw
        }
        hms[i] = n
    }
    return fmt.Sprintf("%02d:%02d:%02d", hms[0], hms[1], hms[2])
}
