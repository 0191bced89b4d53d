package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// TripLoader is satisfied by TripService.
type TripLoader interface {
	LoadTrip(ctx context.Context, tripID string) (models.TripDetail, error)
}

// DocsService renders printable trip manifests.
type DocsService struct {
	Trips TripLoader
	Log   *zap.Logger
	Now   func() time.Time
}

// GenerateTripManifest returns the manifest PDF of a trip and its filename.
func (s DocsService) GenerateTripManifest(ctx context.Context, tripID string) ([]byte, string, error) {
	trip, err := s.Trips.LoadTrip(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	pdf, name, err := buildTripManifestPDF(trip, now)
	if err != nil {
		return nil, "", domain.StorageError{Msg: "render trip manifest", Err: err}
	}
	utils.OrNop(s.Log).Info("trip manifest generated",
		zap.String("request_id", domain.RequestIDFrom(ctx)),
		zap.String("trip_id", trip.ID),
		zap.Int("participants", len(trip.Participants)),
	)
	return pdf, name, nil
}

func buildTripManifestPDF(t models.TripDetail, printed time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Trip         : %s", t.ID),
		fmt.Sprintf("Package      : %s (%s)", utils.Safe(t.PackageName, "-"), t.Package),
		fmt.Sprintf("Date         : %s", utils.Safe(t.BookingDate, "-")),
		fmt.Sprintf("Resource     : %s (%s)", utils.Safe(t.ResourceName, "-"), utils.Safe(t.Resource, "-")),
		fmt.Sprintf("Booked/Cap.  : %d / %d", t.Quantity, t.Capacity),
		fmt.Sprintf("Printed      : %s", printed.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	if t.OverCapacity {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("OVER CAPACITY by %d", -t.Available))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Variations")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, v := range t.VariationQuantity {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s x %d", v.Idx, v.Variation, v.Quantity))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Bookings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, b := range t.Bookings {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s - %s (%s) qty %d", b.Idx, utils.Safe(b.BookingName, "-"), utils.Safe(b.ContactNumber, "-"), b.Name, b.Quantity))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Participants")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(t.Participants) == 0 {
		pdf.Cell(0, 6, "-")
		pdf.Ln(6)
	}
	for _, p := range t.Participants {
		pdf.MultiCell(0, 6, fmt.Sprintf("%v) %s", p["idx"], participantLine(p)), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%s_%s.pdf", utils.SafeFilenamePart(t.Package), utils.SafeFilenamePart(t.BookingDate))
	return buf.Bytes(), filename, nil
}

func participantLine(p models.Participant) string {
	name := fmt.Sprint(p["participant_name"])
	if p["participant_name"] == nil {
		name = "-"
	}
	line := name
	for _, k := range []string{"gender", "age", "nationality", "contact_number"} {
		if v, ok := p[k]; ok && v != nil && fmt.Sprint(v) != "" {
			line += fmt.Sprintf(", %s %v", k, v)
		}
	}
	return line
}
