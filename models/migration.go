package models

import (
	"log"

	"github.com/imovelhub/agent_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Lead{}, &Property{}, &Appointment{}, &Proposal{}, &CheckIn{},
		&History{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
