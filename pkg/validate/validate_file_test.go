package validate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/grocery/internal/domain"
)

func TestValidateFile_Fixture_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	var out bytes.Buffer
	summary, err := ValidateFile(ctx, validator, "../../support/orders.csv", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v (report=%s)", err, out.String())
	}
	if summary.String() != "100 valid / 0 invalid" {
		t.Fatalf("unexpected summary: %s", summary)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty report, got %q", out.String())
	}
}

func TestValidateFile_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	content := strings.Join([]string{
		"1,banana,1.99,cracker,3.00",
		// непарные поля
		"2,banana",
		"3,salad,4.25",
		// повтор id
		"3,soup,2.00",
		// отрицательная цена
		"4,milk,-1",
		// пустой заказ — корректен
		"5",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var out bytes.Buffer
	summary, err := ValidateFile(ctx, validator, path, &out)
	if err == nil || !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture, got %v", err)
	}
	if summary.Valid != 3 || summary.Invalid != 3 {
		t.Fatalf("unexpected summary: %s", summary)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 report lines, got %d: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "line 2:") || !strings.Contains(lines[0], domain.ErrMalformedFixture.Error()) {
		t.Fatalf("unexpected first report line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "line 4:") || !strings.Contains(lines[1], "first seen on line 3") {
		t.Fatalf("unexpected duplicate report line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "line 5:") || !strings.Contains(lines[2], ErrInvalidOrder.Error()) {
		t.Fatalf("unexpected validation report line: %q", lines[2])
	}
}

func TestValidateStream_NoValidator(t *testing.T) {
	ctx := context.Background()

	var out bytes.Buffer
	summary, err := ValidateStream(ctx, nil, strings.NewReader("1,milk,-1\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Valid != 1 {
		t.Fatalf("without validator only parsing is checked: %s", summary)
	}
}

func TestValidateFile_OpenError(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	var out bytes.Buffer
	_, err := ValidateFile(ctx, validator, "no-such-file.csv", &out)
	if err == nil {
		t.Fatalf("expected open error")
	}
}

func TestValidateStream_BrokenCSV(t *testing.T) {
	ctx := context.Background()

	var out bytes.Buffer
	sum, err := ValidateStream(ctx, NewOrderValidator(), strings.NewReader("1,\"banana,1.99\n"), &out)
	if !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture, got %v", err)
	}
	if sum.Valid != 0 || sum.Invalid != 1 {
		t.Fatalf("summary: want 0 valid / 1 invalid, got %s", sum)
	}
	if !strings.HasPrefix(out.String(), "line 1: ") {
		t.Fatalf("report must point at line 1, got %q", out.String())
	}
}

// Синтаксическая ошибка CSV в середине файла не прерывает проверку.
func TestValidateStream_BareQuoteContinues(t *testing.T) {
	ctx := context.Background()

	in := "1,a\"b,1.00\n2,x,1.00\n3,y\n"
	var out bytes.Buffer
	sum, err := ValidateStream(ctx, NewOrderValidator(), strings.NewReader(in), &out)
	if !errors.Is(err, ErrInvalidFixture) {
		t.Fatalf("expected ErrInvalidFixture, got %v", err)
	}
	if sum.Valid != 1 || sum.Invalid != 2 {
		t.Fatalf("summary: want 1 valid / 2 invalid, got %s", sum)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 report lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "line 1: ") || !strings.Contains(lines[0], "bare \"") {
		t.Fatalf("first report line must describe the bare quote on line 1, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "line 3: ") {
		t.Fatalf("second report line must point at line 3, got %q", lines[1])
	}
}
