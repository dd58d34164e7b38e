package devapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"qrmenu/internal/model"
)

const qrSize = 256

type qrResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode,omitempty"`
	Error   string `json:"error,omitempty"`
}

func qrContent(req model.QRRequest) string {
	s := fmt.Sprintf("Order #%d | Total: %.2f | Items: %d", req.OrderID, req.Amount, req.Items)
	if req.Date != "" {
		s += " | Date: " + req.Date
	}
	return s
}

func (s *Server) handleGenerateQR(w http.ResponseWriter, r *http.Request) {
	var req model.QRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, qrResponse{Error: "invalid json"})
		return
	}
	if req.OrderID <= 0 {
		writeJSON(w, http.StatusBadRequest, qrResponse{Error: "orderId required"})
		return
	}

	png, err := qrcode.Encode(qrContent(req), qrcode.Medium, qrSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, qrResponse{Error: "qr generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, qrResponse{
		Success: true,
		QRCode:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}
