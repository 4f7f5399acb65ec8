// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Wizard endpoints
	GetCatalog    gin.HandlerFunc
	StartSession  gin.HandlerFunc
	GetSession    gin.HandlerFunc
	SetFields     gin.HandlerFunc
	SetSensory    gin.HandlerFunc
	NextStep      gin.HandlerFunc
	PrevStep      gin.HandlerFunc
	GoToStep      gin.HandlerFunc
	SubmitBooking gin.HandlerFunc
	DismissError  gin.HandlerFunc
	CancelSession gin.HandlerFunc

	// Booking endpoint
	CreateBooking gin.HandlerFunc

	// Health endpoint
	Health gin.HandlerFunc
}
