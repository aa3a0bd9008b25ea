package handler

import (
	"net/http"

	"github.com/pawprintgames/gachapet/internal/attendance"
)

// HandleGetAttendance returns the streak state and today's claimability
func HandleGetAttendance(attendanceService attendance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		status, err := attendanceService.Status(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "get attendance", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: status})
	}
}

// HandleClaimAttendance performs today's check-in
func HandleClaimAttendance(attendanceService attendance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetPlayerID(w, r)
		if !ok {
			return
		}

		result, err := attendanceService.Claim(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, "claim attendance", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "Attendance claimed", Data: result})
	}
}
