package database

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/iliyamo/train-reservation/internal/utils"
)

// schema contains the DDL for every table the service touches.  All
// statements are idempotent so Bootstrap can run against a live database
// without clobbering existing rows.
var schema = []string{
    `CREATE TABLE IF NOT EXISTS users (
        id INT AUTO_INCREMENT PRIMARY KEY,
        username VARCHAR(50) NOT NULL UNIQUE,
        password_hash VARCHAR(100) NOT NULL,
        is_admin BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
    `CREATE TABLE IF NOT EXISTS stations (
        station_id INT AUTO_INCREMENT PRIMARY KEY,
        station_name VARCHAR(100) NOT NULL,
        code VARCHAR(10) NOT NULL UNIQUE
    )`,
    `CREATE TABLE IF NOT EXISTS train_schedule (
        schedule_id INT AUTO_INCREMENT PRIMARY KEY,
        train_name VARCHAR(100) NOT NULL,
        source_station_id INT NOT NULL,
        destination_station_id INT NOT NULL,
        departure_time TIME NOT NULL,
        arrival_time TIME NOT NULL,
        total_seats INT NOT NULL,
        FOREIGN KEY (source_station_id) REFERENCES stations(station_id),
        FOREIGN KEY (destination_station_id) REFERENCES stations(station_id)
    )`,
    `CREATE TABLE IF NOT EXISTS passengers (
        passenger_id INT AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(100) NOT NULL,
        email VARCHAR(100) NOT NULL
    )`,
    `CREATE TABLE IF NOT EXISTS bookings (
        booking_id INT AUTO_INCREMENT PRIMARY KEY,
        passenger_id INT NOT NULL,
        schedule_id INT NOT NULL,
        booking_date DATE NOT NULL,
        FOREIGN KEY (passenger_id) REFERENCES passengers(passenger_id),
        FOREIGN KEY (schedule_id) REFERENCES train_schedule(schedule_id)
    )`,
    `CREATE TABLE IF NOT EXISTS tickets (
        ticket_id INT AUTO_INCREMENT PRIMARY KEY,
        booking_id INT NOT NULL,
        seat_number VARCHAR(10) NOT NULL,
        travel_date DATE NOT NULL,
        FOREIGN KEY (booking_id) REFERENCES bookings(booking_id)
    )`,
    `CREATE TABLE IF NOT EXISTS payments (
        payment_id INT AUTO_INCREMENT PRIMARY KEY,
        booking_id INT NOT NULL,
        amount DECIMAL(10,2) NOT NULL,
        payment_date DATETIME NOT NULL,
        payment_method VARCHAR(30) NOT NULL,
        FOREIGN KEY (booking_id) REFERENCES bookings(booking_id)
    )`,
    `CREATE TABLE IF NOT EXISTS feedbacks (
        feedback_id INT AUTO_INCREMENT PRIMARY KEY,
        user_email VARCHAR(100) NOT NULL,
        category VARCHAR(50) NOT NULL,
        message TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
}

// seedStations holds real station data used to preload the catalog.
var seedStations = []struct {
    Name string
    Code string
}{
    {"New Delhi", "NDLS"},
    {"Mumbai Central", "MMCT"},
    {"Kolkata Howrah", "HWH"},
    {"Chennai Central", "MAS"},
    {"KSR Bengaluru", "SBC"},
    {"Hyderabad Deccan", "HYB"},
}

// seedTrains holds a starter set of schedules between the seeded stations.
// Source and destination reference stations by code.
var seedTrains = []struct {
    Name     string
    From, To string
    Dep, Arr string
    Seats    int
}{
    {"Vande Bharat Exp (22436)", "NDLS", "HWH", "06:00:00", "14:00:00", 1128},
    {"Mumbai Rajdhani (12951)", "MMCT", "NDLS", "17:00:00", "08:30:00", 1200},
    {"Howrah Rajdhani (12301)", "HWH", "NDLS", "16:50:00", "10:00:00", 1200},
    {"Coromandel Express (12841)", "HWH", "MAS", "15:20:00", "16:50:00", 1500},
    {"Charminar Express (12760)", "HYB", "MAS", "18:00:00", "08:15:00", 1100},
    {"Kacheguda Exp (12785)", "HYB", "SBC", "19:05:00", "06:25:00", 1100},
    {"Brindavan Express (12640)", "SBC", "MAS", "15:10:00", "21:10:00", 1200},
    {"Karnataka Express (12627)", "SBC", "NDLS", "19:20:00", "09:00:00", 1400},
}

// Bootstrap creates the schema and seeds reference data.  It is exposed
// behind an admin-only endpoint rather than a public route, and it never
// drops existing tables or rows.  bcryptCost is used when the default
// admin account has to be created.
func Bootstrap(ctx context.Context, db *sql.DB, bcryptCost int) error {
    for _, stmt := range schema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return fmt.Errorf("schema: %w", err)
        }
    }
    if err := seedStationData(ctx, db); err != nil {
        return err
    }
    return ensureAdmin(ctx, db, bcryptCost)
}

func seedStationData(ctx context.Context, db *sql.DB) error {
    for _, s := range seedStations {
        if _, err := db.ExecContext(ctx,
            "INSERT IGNORE INTO stations (station_name, code) VALUES (?,?)",
            s.Name, s.Code); err != nil {
            return fmt.Errorf("seed station %s: %w", s.Code, err)
        }
    }
    for _, t := range seedTrains {
        var srcID, dstID uint64
        if err := db.QueryRowContext(ctx,
            "SELECT station_id FROM stations WHERE code=?", t.From).Scan(&srcID); err != nil {
            return fmt.Errorf("seed train %s: %w", t.Name, err)
        }
        if err := db.QueryRowContext(ctx,
            "SELECT station_id FROM stations WHERE code=?", t.To).Scan(&dstID); err != nil {
            return fmt.Errorf("seed train %s: %w", t.Name, err)
        }
        var exists int
        err := db.QueryRowContext(ctx,
            "SELECT 1 FROM train_schedule WHERE train_name=? LIMIT 1", t.Name).Scan(&exists)
        if err == nil {
            continue // already seeded
        }
        if err != sql.ErrNoRows {
            return fmt.Errorf("seed train %s: %w", t.Name, err)
        }
        if _, err := db.ExecContext(ctx,
            `INSERT INTO train_schedule
             (train_name, source_station_id, destination_station_id, departure_time, arrival_time, total_seats)
             VALUES (?,?,?,?,?,?)`,
            t.Name, srcID, dstID, t.Dep, t.Arr, t.Seats); err != nil {
            return fmt.Errorf("seed train %s: %w", t.Name, err)
        }
    }
    return nil
}

// ensureAdmin creates the default admin account when it does not exist yet.
// Unlike the self-healing path on admin login, this one never overwrites a
// password that is already set.
func ensureAdmin(ctx context.Context, db *sql.DB, bcryptCost int) error {
    var exists int
    err := db.QueryRowContext(ctx,
        "SELECT 1 FROM users WHERE username='admin' LIMIT 1").Scan(&exists)
    if err == nil {
        _, err = db.ExecContext(ctx, "UPDATE users SET is_admin=1 WHERE username='admin'")
        return err
    }
    if err != sql.ErrNoRows {
        return err
    }
    hash, err := utils.HashPassword("admin123", bcryptCost)
    if err != nil {
        return err
    }
    _, err = db.ExecContext(ctx,
        "INSERT INTO users (username, password_hash, is_admin) VALUES ('admin', ?, 1)", hash)
    return err
}
