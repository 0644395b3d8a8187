package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

// leadItem is the admin view of a stored lead.
type leadItem struct {
	ID             string    `json:"id"`
	ProductLine    string    `json:"productLine"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	PostalCode     string    `json:"postalCode"`
	City           string    `json:"city"`
	Comments       string    `json:"comments,omitempty"`
	AttachmentURL  string    `json:"attachmentUrl,omitempty"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	RoofAngle      int       `json:"roofAngle"`
	Model          string    `json:"model"`
	Material       string    `json:"material"`
	WindowCount    int       `json:"windowCount"`
	DeliveryTime   string    `json:"deliveryTime"`
	Options        []string  `json:"options"`
	Subtotal       float64   `json:"subtotal"`
	Tax            float64   `json:"tax"`
	Total          float64   `json:"total"`
	PricingVersion int64     `json:"pricingVersion"`
}

func newLeadItem(r submission.Record) leadItem {
	return leadItem{
		ID:             r.ID,
		ProductLine:    r.ProductLine,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		PostalCode:     r.PostalCode,
		City:           r.City,
		Comments:       r.Comments,
		AttachmentURL:  r.AttachmentURL,
		Width:          r.Width,
		Height:         r.Height,
		RoofAngle:      r.RoofAngle,
		Model:          r.Model,
		Material:       r.Material,
		WindowCount:    r.WindowCount,
		DeliveryTime:   r.DeliveryTime,
		Options:        optionKeys(r.Options),
		Subtotal:       r.Subtotal,
		Tax:            r.Tax,
		Total:          r.Total,
		PricingVersion: r.PricingVersion,
	}
}

func optionKeys(o domain.Options) []string {
	keys := o.Enabled()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

var leadExportHeaders = []string{
	"Datum", "Productlijn", "Status", "Naam", "E-mail", "Telefoon", "Adres", "Postcode", "Plaats",
	"Breedte (cm)", "Hoogte (cm)", "Model", "Materiaal", "Ramen", "Levertijd", "Opties",
	"Subtotaal", "BTW", "Totaal", "Prijsversie", "Bijlage", "Opmerking",
}

// LeadsWorkbook builds a single-sheet workbook with one row per lead.
func LeadsWorkbook(recs []submission.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Aanvragen"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range leadExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, bold)
	}

	var total float64
	for i, r := range recs {
		row := []any{
			r.CreatedAt.Format("2006-01-02 15:04"), r.ProductLine, r.Status,
			r.Name, r.Email, r.Phone, r.Address, r.PostalCode, r.City,
			r.Width, r.Height, domain.ModelType(r.Model).Label(), r.Material,
			r.WindowCount, r.DeliveryTime, strings.Join(optionKeys(r.Options), ", "),
			r.Subtotal, r.Tax, r.Total, r.PricingVersion, r.AttachmentURL, r.Comments,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
		total += r.Total
	}

	summary := len(recs) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summary), "Totaal")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summary), fmt.Sprintf("%d aanvragen", len(recs)))
	f.SetCellValue(sheet, fmt.Sprintf("S%d", summary), total)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summary), fmt.Sprintf("V%d", summary), bold)

	widths := []float64{16, 22, 8, 20, 26, 14, 24, 10, 16, 12, 12, 14, 12, 8, 12, 40, 12, 10, 12, 10, 30, 30}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f, nil
}
