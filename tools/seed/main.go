// Seeds a local database with demo tenants, clients and appointments
// for manual testing against a running instance.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"bookwise/config"
	"bookwise/database"
	"bookwise/models"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	tenantColl := db.Collection("tenants")
	clientColl := db.Collection("clients")
	apptColl := db.Collection("appointments")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear existing data.
	for _, coll := range []string{"tenants", "clients", "appointments"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	plans := []string{models.PlanStarter, models.PlanBasic, models.PlanProfessional, models.PlanAdvanced}
	zones := []string{"UTC", "Europe/Berlin", "America/New_York", "Asia/Tokyo"}

	now := time.Now().UTC()
	var tenants []interface{}
	var clients []interface{}
	var appts []interface{}

	for i := 1; i <= 8; i++ {
		tenantID := fmt.Sprintf("tenant-%d", i)
		plan := plans[(i-1)%len(plans)]

		// Open Monday through Friday, 09:00-17:00.
		var days []models.DaySchedule
		for wd := 1; wd <= 5; wd++ {
			days = append(days, models.DaySchedule{
				Weekday: wd, Enabled: true, Start: "09:00", End: "17:00",
			})
		}

		activeClients := rand.Intn(4)
		tenants = append(tenants, models.Tenant{
			ID:    tenantID,
			Name:  fmt.Sprintf("Demo Studio %d", i),
			Email: fmt.Sprintf("studio%d@example.com", i),
			Plan:  plan,
			Availability: models.WeeklyAvailability{
				TimeZone: zones[(i-1)%len(zones)],
				Days:     days,
			},
			ActiveClientCount: activeClients,
			CreatedAt:         now,
			UpdatedAt:         now,
		})

		for c := 1; c <= activeClients; c++ {
			clients = append(clients, models.Client{
				ID:        fmt.Sprintf("%s-client-%d", tenantID, c),
				TenantID:  tenantID,
				Name:      fmt.Sprintf("Client %d", c),
				Email:     fmt.Sprintf("client%d.%d@example.com", i, c),
				Status:    models.ClientActive,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		// A couple of booked appointments on the next weekday morning.
		date := nextWeekday(now).Format("2006-01-02")
		for a := 0; a < 2; a++ {
			start := 9*60 + a*90
			appts = append(appts, models.Appointment{
				ID:        fmt.Sprintf("%s-appt-%d", tenantID, a+1),
				TenantID:  tenantID,
				ClientID:  fmt.Sprintf("%s-client-1", tenantID),
				Date:      date,
				Start:     start,
				End:       start + 60,
				Status:    models.AppointmentBooked,
				CreatedAt: now,
			})
		}
	}

	if _, err := tenantColl.InsertMany(ctx, tenants); err != nil {
		log.Fatalf("Failed to seed tenants: %v", err)
	}
	if len(clients) > 0 {
		if _, err := clientColl.InsertMany(ctx, clients); err != nil {
			log.Fatalf("Failed to seed clients: %v", err)
		}
	}
	if _, err := apptColl.InsertMany(ctx, appts); err != nil {
		log.Fatalf("Failed to seed appointments: %v", err)
	}

	log.Printf("Seeded %d tenants, %d clients, %d appointments", len(tenants), len(clients), len(appts))
}

// nextWeekday returns the first Monday-Friday date strictly after t.
func nextWeekday(t time.Time) time.Time {
	d := t.AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
