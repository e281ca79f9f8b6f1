package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/scmc/club-backend/internal/adapters/database"
	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/entities"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	"github.com/scmc/club-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	userRepo := database.NewUserAdapter(pgClient)
	courtRepo := database.NewCourtAdapter(pgClient)
	couponRepo := database.NewCouponAdapter(pgClient)
	announcementRepo := database.NewAnnouncementAdapter(pgClient)
	eventRepo := database.NewEventAdapter(pgClient)

	courtService := services.NewCourtService(courtRepo)
	couponService := services.NewCouponService(couponRepo)
	announcementService := services.NewAnnouncementService(announcementRepo)
	eventService := services.NewEventService(eventRepo)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				payments,
				bookings,
				reviews,
				coupons,
				events,
				announcements,
				courts,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed the admin account. Registration through the API always
	// produces plain users, so the admin goes in via the repository.
	admin := &entities.User{
		ID:        uuid.New().String(),
		Email:     "admin@scmclub.com",
		Name:      "Club Admin",
		Role:      entities.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("Failed to create admin user: %v", err)
	}

	// 2. Seed the court catalog
	courts := []entities.Court{
		{CourtType: "Tennis", Image: "/images/courts/tennis.jpg", Slots: "06:00-08:00,08:00-10:00,16:00-18:00,18:00-20:00", Price: 45, Featured: true},
		{CourtType: "Badminton", Image: "/images/courts/badminton.jpg", Slots: "07:00-08:00,08:00-09:00,17:00-18:00,18:00-19:00", Price: 25, Featured: true},
		{CourtType: "Squash", Image: "/images/courts/squash.jpg", Slots: "06:00-07:00,07:00-08:00,19:00-20:00,20:00-21:00", Price: 30, Featured: false},
		{CourtType: "Basketball", Image: "/images/courts/basketball.jpg", Slots: "08:00-10:00,10:00-12:00,16:00-18:00", Price: 60, Featured: true},
		{CourtType: "Table Tennis", Image: "/images/courts/table-tennis.jpg", Slots: "09:00-10:00,10:00-11:00,15:00-16:00", Price: 15, Featured: false},
		{CourtType: "Futsal", Image: "/images/courts/futsal.jpg", Slots: "17:00-18:00,18:00-19:00,19:00-20:00", Price: 80, Featured: false},
	}

	for i := range courts {
		c := courts[i]
		if err := courtService.Create(ctx, &c); err != nil {
			log.Printf("Failed to create court %s: %v", c.CourtType, err)
		}
	}

	// 3. Seed coupons
	coupons := []entities.Coupon{
		{Code: "WELCOME10", DiscountPercentage: 10, Status: entities.CouponStatusActive},
		{Code: "SUMMER20", DiscountPercentage: 20, Status: entities.CouponStatusActive},
		{Code: "EXPIRED15", DiscountPercentage: 15, Status: entities.CouponStatusInactive},
	}

	for i := range coupons {
		c := coupons[i]
		if err := couponService.Create(ctx, &c); err != nil {
			log.Printf("Failed to create coupon %s: %v", c.Code, err)
		}
	}

	// 4. Seed announcements
	announcements := []entities.Announcement{
		{Title: "Court Maintenance", Message: "Tennis courts 1 and 2 will be closed for resurfacing this weekend."},
		{Title: "New Booking Hours", Message: "Courts can now be booked from 6 AM daily."},
	}

	for i := range announcements {
		a := announcements[i]
		if err := announcementService.Create(ctx, &a); err != nil {
			log.Printf("Failed to create announcement %s: %v", a.Title, err)
		}
	}

	// 5. Seed upcoming events
	events := []entities.Event{
		{Title: "Summer Open Tournament", Description: "Annual singles tournament, all levels welcome.", Date: time.Now().AddDate(0, 1, 0)},
		{Title: "Members Night", Description: "Free court time and refreshments for members.", Date: time.Now().AddDate(0, 0, 14)},
	}

	for i := range events {
		e := events[i]
		if err := eventService.Create(ctx, &e); err != nil {
			log.Printf("Failed to create event %s: %v", e.Title, err)
		}
	}

	log.Println("Seeding completed successfully")
}
