package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/integration/persistence/model"
)

// iAmLoggedInAsRole seeds a profile with the given role and signs an
// access token for it.
func (t *testContext) iAmLoggedInAsRole(role string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	profile := &model.UserProfileModel{
		ID:        userID,
		Email:     fmt.Sprintf("%s@agence-irrigation.fr", role),
		FullName:  "Utilisateur Test",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(profile).Error; err != nil {
		return err
	}

	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      profile.Email,
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) aMarketExistsWithEstimatedAmount(number, amount string) error {
	estimated, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid estimated amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	market := &model.MarketModel{
		ID:              uuid.New(),
		Number:          number,
		Object:          "Extension du réseau d'irrigation " + number,
		EstimatedAmount: estimated,
		Currency:        "EUR",
		Status:          "awarded",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return t.db.DbConn.Create(market).Error
}

func (t *testContext) anActiveContractExistsOnMarket(reference, amount, marketNumber string) error {
	var market model.MarketModel
	if err := t.db.DbConn.Where("number = ?", marketNumber).First(&market).Error; err != nil {
		return fmt.Errorf("market %q not found: %w", marketNumber, err)
	}
	return t.createContract(reference, amount, &market.ID)
}

func (t *testContext) anActiveContractExists(reference, amount string) error {
	return t.createContract(reference, amount, nil)
}

func (t *testContext) createContract(reference, amount string, marketID *uuid.UUID) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid contract amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	contract := &model.ContractModel{
		ID:              uuid.New(),
		Reference:       reference,
		Subject:         "Travaux d'irrigation " + reference,
		Amount:          value,
		Status:          "active",
		StartDate:       now.AddDate(0, -1, 0),
		Deadline:        now.AddDate(0, 6, 0),
		Awardee:         "Hydraulique du Sud",
		MarketID:        marketID,
		PaymentStatus:   "pending",
		RemainingAmount: value,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.db.DbConn.Create(contract).Error; err != nil {
		return err
	}
	t.contractIDs[reference] = contract.ID
	return nil
}

func (t *testContext) aSettlementExistsForContract(amount, reference string) error {
	contractID, ok := t.contractIDs[reference]
	if !ok {
		return fmt.Errorf("contract %q was not seeded", reference)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid settlement amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	settlement := &model.SettlementModel{
		ID:         uuid.New(),
		ContractID: contractID,
		Amount:     value,
		SettledAt:  now.AddDate(0, 0, -7),
		Reference:  "VIR-" + reference,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.db.DbConn.Create(settlement).Error; err != nil {
		return err
	}
	t.settlementID = settlement.ID
	return nil
}

func (t *testContext) anExpenseExistsInCategory(amount, category string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid expense amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	expense := &model.ExpenseModel{
		ID:            uuid.New(),
		Description:   "Fournitures " + category,
		Amount:        value,
		Category:      category,
		Date:          now.AddDate(0, 0, -3),
		Status:        "paid",
		PaymentMethod: "transfer",
		Supplier:      "Matériaux Provence",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(expense).Error; err != nil {
		return err
	}
	t.expenseID = expense.ID
	return nil
}

// theFinancialSnapshotHasBeenRefreshed forces an aggregation run through
// the API so snapshot-backed endpoints have data to serve.
func (t *testContext) theFinancialSnapshotHasBeenRefreshed() error {
	if err := t.executeRequest(http.MethodPost, "/api/v1/finances/refresh", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("snapshot refresh failed with status %d: %v", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders substitutes seeded record IDs into paths and bodies.
func (t *testContext) replacePlaceholders(content string) string {
	for reference, id := range t.contractIDs {
		content = strings.ReplaceAll(content, "{{contract:"+reference+"}}", id.String())
	}
	content = strings.ReplaceAll(content, "{{settlement_id}}", t.settlementID.String())
	content = strings.ReplaceAll(content, "{{expense_id}}", t.expenseID.String())
	content = strings.ReplaceAll(content, "{{last_created_id}}", t.lastCreatedID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := testServer.URL + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		raw:         raw,
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.response.body = string(raw)
	} else {
		t.response.body = decoded
		if idStr, ok := decoded["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastCreatedID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseContentTypeShouldBe(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.HasPrefix(t.response.contentType, expected) {
		return fmt.Errorf("expected content type '%s', got '%s'", expected, t.response.contentType)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := t.db.DbConn.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

// getFieldValue resolves a dot-separated field path, with numeric segments
// indexing into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
		} else {
			m, ok := field.(map[string]any)
			if !ok {
				return nil
			}
			field = m[currentField]
		}
	}

	return field
}
