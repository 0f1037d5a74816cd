package http

import (
	"net/http"

	"fleetops-backend/internal/service"
)

type DriverHandler struct {
	driverSvc service.DriverService
}

func NewDriverHandler(driverSvc service.DriverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

type createDriverRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (h *DriverHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	driver, err := h.driverSvc.CreateDriver(r.Context(), actorFrom(r), req.FullName, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, driver)
}

func (h *DriverHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	driver, err := h.driverSvc.GetDriver(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, driver)
}

func (h *DriverHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.driverSvc.ListDrivers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, drivers)
}
