package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/payments"
	log "github.com/sirupsen/logrus"
)

const (
	paymentConfirmed     = "결제가 성공적으로 완료되었습니다."
	paymentConfirmFailed = "결제 승인에 실패했습니다."
	serverError          = "서버 오류가 발생했습니다."
)

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)

	var req CreateOrderRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, payments.ErrMissingParams.Error(), validationDetails(err))
		return
	}

	order, err := s.checkout.CreateOrder(me.ID, req.CourseID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Course not found", "")
		return
	}
	if err != nil {
		log.Errorf("creating order for %s: %v", req.CourseID, err)
		writeError(w, http.StatusInternalServerError, serverError, "")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req payments.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, payments.ErrMissingParams.Error(), "")
		return
	}

	confirmation, _, err := s.checkout.Confirm(r.Context(), req)
	if err != nil {
		var gerr *payments.GatewayError
		switch {
		case errors.Is(err, payments.ErrMissingParams),
			errors.Is(err, payments.ErrAmountMismatch),
			errors.Is(err, payments.ErrOrderClosed):
			writeError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, payments.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, err.Error(), "")
		case errors.As(err, &gerr):
			status := gerr.Status
			if status < http.StatusBadRequest {
				status = http.StatusBadGateway
			}
			writeError(w, status, paymentConfirmFailed, gerr.Message)
		default:
			log.Errorf("confirming payment %s: %v", req.OrderID, err)
			writeError(w, http.StatusInternalServerError, serverError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, ConfirmPaymentResponse{
		Success:    true,
		PaymentKey: confirmation.PaymentKey,
		OrderID:    confirmation.OrderID,
		Amount:     confirmation.Amount,
		Method:     confirmation.Method,
		ApprovedAt: confirmation.ApprovedAt,
		Message:    paymentConfirmed,
	})
}

func (s *Server) paymentFail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")

	writeJSON(w, http.StatusOK, PaymentFailResponse{
		Success: false,
		Code:    code,
		Message: payments.FailMessage(code, query.Get("message")),
	})
}

func (s *Server) paymentHistory(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	query := r.URL.Query()

	if id := query.Get("id"); id != "" {
		payment, err := s.checkout.Payment(id)
		if errors.Is(err, payments.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		if err != nil {
			log.Errorf("loading payment %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, serverError, err.Error())
			return
		}
		if !me.IsAdmin() && !strings.EqualFold(payment.CustomerEmail, me.Email) {
			writeError(w, http.StatusForbidden, "Forbidden", "")
			return
		}

		writeJSON(w, http.StatusOK, PaymentResponse{Success: true, Payment: payment})
		return
	}

	if email := query.Get("email"); email != "" {
		if !me.IsAdmin() && !strings.EqualFold(email, me.Email) {
			writeError(w, http.StatusForbidden, "Forbidden", "")
			return
		}

		history, err := s.checkout.History(email)
		if err != nil {
			log.Errorf("loading payments of %s: %v", email, err)
			writeError(w, http.StatusInternalServerError, serverError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, PaymentHistoryResponse{Success: true, Payments: history, Count: len(history)})
		return
	}

	writeError(w, http.StatusBadRequest, payments.ErrHistoryParamsMissing.Error(), "")
}
