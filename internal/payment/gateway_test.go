package payment

import (
	"context"
	"strings"
	"testing"
)

func TestSucceedModeCharges(t *testing.T) {
	g := NewSimulated(ModeSucceed)
	res, err := g.Charge(context.Background(), 2500, "usd", "tok_visa")
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if !res.Succeeded || !strings.HasPrefix(res.ChargeID, "ch_") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDeclineModeFails(t *testing.T) {
	g := NewSimulated(ModeDecline)
	res, err := g.Charge(context.Background(), 2500, "usd", "tok_visa")
	if err == nil {
		t.Fatal("expected a decline error")
	}
	if res.Succeeded {
		t.Fatalf("declined charge reported success: %+v", res)
	}
	if res.ChargeID == "" {
		t.Fatal("declined charges still get an id")
	}
}

func TestNonPositiveAmountRejected(t *testing.T) {
	g := NewSimulated(ModeSucceed)
	if _, err := g.Charge(context.Background(), 0, "usd", "tok_visa"); err == nil {
		t.Fatal("expected an error for zero amount")
	}
}

func TestEmptyModeDefaultsToSucceed(t *testing.T) {
	g := NewSimulated("")
	res, err := g.Charge(context.Background(), 100, "usd", "tok_visa")
	if err != nil || !res.Succeeded {
		t.Fatalf("expected success, got %+v err %v", res, err)
	}
}
