package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/yunusabdullaev/crm-clinic-sub000/FirebaseMessaging"
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// OpenVisitReminder nudges clinic staff about visits that were started but
// never completed or drafted to a finish.
type OpenVisitReminder struct {
	DB *gorm.DB
}

func NewOpenVisitReminder(db *gorm.DB) *OpenVisitReminder {
	return &OpenVisitReminder{
		DB: db,
	}
}

// StartReminderCron starts the cron job that checks for stale open visits.
func (r *OpenVisitReminder) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Hours().Do(func() {
		log.Println("Running open visit reminder check...")
		if err := r.SendOpenVisitReminders(); err != nil {
			log.Printf("Error sending open visit reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Open visit reminder cron job started")

	return scheduler
}

// SendOpenVisitReminders notifies each clinic group about its visits that
// have been sitting open for more than a day, once per visit.
func (r *OpenVisitReminder) SendOpenVisitReminders() error {
	cutoff := time.Now().Add(-24 * time.Hour)

	var visits []Models.Visit
	err := r.DB.Model(&Models.Visit{}).
		Where("status = ? AND reminder_sent = ? AND created_at < ?", Models.VisitStatusStarted, false, cutoff).
		Find(&visits).Error
	if err != nil {
		return err
	}

	for _, visit := range visits {
		tokens, err := Models.GetGroupFCMs(visit.ClinicGroupID)
		if err != nil {
			log.Printf("Error fetching tokens for clinic group %d: %v", visit.ClinicGroupID, err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		body := fmt.Sprintf("Visit for %s with %s has been open since %s",
			visit.PatientName, visit.DoctorName, visit.CreatedAt.Format("2006-01-02 15:04"))
		err = FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: tokens,
			Title:  "Unfinished Visit",
			Body:   body,
		})
		if err != nil {
			log.Printf("Error sending reminder for visit %d: %v", visit.ID, err)
			continue
		}

		if err := r.DB.Model(&Models.Visit{}).Where("id = ?", visit.ID).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Error marking reminder sent for visit %d: %v", visit.ID, err)
		}
	}

	return nil
}
