package repository

import (
    "context"
    "database/sql"
    "strings"
)

// StationRepo provides CRUD operations for stations.
type StationRepo struct{ db *sql.DB }

// NewStationRepo returns a new StationRepo bound to the given database.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// StationRow is the wire shape of a station.  Field names follow the
// column names the API has always exposed.
type StationRow struct {
    StationID   uint64 `json:"station_id"`
    StationName string `json:"station_name"`
    Code        string `json:"code"`
}

// List returns all stations ordered by name.
func (r *StationRepo) List(ctx context.Context) ([]StationRow, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT station_id, station_name, code FROM stations ORDER BY station_name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]StationRow, 0)
    for rows.Next() {
        var s StationRow
        if err := rows.Scan(&s.StationID, &s.StationName, &s.Code); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// Create inserts a station and returns its ID.  Codes are stored upper-case.
func (r *StationRepo) Create(ctx context.Context, name, code string) (uint64, error) {
    name = strings.TrimSpace(name)
    code = strings.ToUpper(strings.TrimSpace(code))
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO stations (station_name, code) VALUES (?,?)", name, code)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}
