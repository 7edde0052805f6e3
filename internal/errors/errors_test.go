package errors

import (
	"errors"
	"testing"
)

func TestWrap_PreservesAppErrorCode(t *testing.T) {
	base := NoData("nothing loaded")

	wrapped := Wrap(base, "analysis aborted")

	if GetCode(wrapped) != CodeNoData {
		t.Errorf("Expected code %s, got %s", CodeNoData, GetCode(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Error("Wrapped error must unwrap to its cause")
	}
	if wrapped.Error() != "analysis aborted: nothing loaded" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
}

func TestWrap_PlainErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "load failed")

	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("Expected code %s, got %s", CodeInternalError, GetCode(wrapped))
	}
}

func TestWrap_NilIsNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrapping nil must stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf on nil must stay nil")
	}
}

func TestWrapf_FormatsMessage(t *testing.T) {
	wrapped := Wrapf(errors.New("boom"), "dataset %d failed", 3)

	if wrapped.Error() != "dataset 3 failed: boom" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
}

func TestIsAppErrorAndGetCode(t *testing.T) {
	if !IsAppError(ConfigInvalid("bad port")) {
		t.Error("Constructor results must be AppErrors")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("Plain errors are not AppErrors")
	}
	if GetCode(errors.New("plain")) != "UNKNOWN" {
		t.Errorf("Plain errors must report UNKNOWN, got %s", GetCode(errors.New("plain")))
	}
}

func TestDatabaseError_CarriesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := DatabaseError("failed to save report", cause)

	if GetCode(err) != CodeDatabaseError {
		t.Errorf("Expected code %s, got %s", CodeDatabaseError, GetCode(err))
	}
	if !errors.Is(err, cause) {
		t.Error("Database error must unwrap to its cause")
	}
	if err.Error() != "failed to save report: connection reset" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestInsightFailure_WrapsCause(t *testing.T) {
	cause := New(CodeNoData, "no datasets to analyze")
	err := InsightFailure(cause)

	if GetCode(err) != CodeInsightFailure {
		t.Errorf("Expected code %s, got %s", CodeInsightFailure, GetCode(err))
	}
	if err.Error() != "insight generation failed: no datasets to analyze" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
