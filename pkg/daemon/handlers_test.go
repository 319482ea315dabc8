package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/bridge"
	"github.com/battbridge/battd/pkg/powersupply"
)

func setupTestRouter(prefill map[string]string) *gin.Engine {
	hostBridge = bridge.New(powersupply.NewMock(prefill))
	return setupRoutes()
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func mockCharging() map[string]string {
	return map[string]string{
		"BAT0/type":        powersupply.TypeBattery,
		"BAT0/status":      powersupply.StatusCharging,
		"BAT0/charge_now":  "80",
		"BAT0/charge_full": "100",
		"BAT0/health":      "Good",
		"BAT0/temp":        "285",
		"BAT0/voltage_now": "4000000",
		"usb/type":         powersupply.TypeUSB,
		"usb/online":       "1",
	}
}

func TestGetBatteryLevelRoute(t *testing.T) {
	router := setupTestRouter(mockCharging())

	w := doRequest(router, "/v1/battery/level")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != "80" {
		t.Errorf("body = %q, want %q", got, "80")
	}
}

func TestGetBatteryInfoRoute(t *testing.T) {
	router := setupTestRouter(mockCharging())

	w := doRequest(router, "/v1/battery/info")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var info batteryinfo.Info
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	want := batteryinfo.Info{
		Level:              80,
		IsCharging:         true,
		ChargingSource:     batteryinfo.SourceUSB,
		Health:             batteryinfo.HealthGood,
		TemperatureCelsius: 28.5,
		VoltageMillivolts:  4000,
	}
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestCallRouteDispatch(t *testing.T) {
	router := setupTestRouter(mockCharging())

	w := doRequest(router, "/v1/call/getBatteryLevel")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "80" {
		t.Errorf("body = %q, want %q", got, "80")
	}
}

func TestCallRouteNotImplemented(t *testing.T) {
	router := setupTestRouter(mockCharging())

	w := doRequest(router, "/v1/call/getFoo")
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotImplemented)
	}

	var reply errorReply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}
	if reply.Kind != string(bridge.KindNotImplemented) {
		t.Errorf("kind = %q, want %q", reply.Kind, bridge.KindNotImplemented)
	}
	if reply.Message == "" {
		t.Error("message is empty, want a diagnostic")
	}
}

func TestBatteryRoutesUnavailable(t *testing.T) {
	// Host with no battery device: both operations fail whole, with a
	// distinct status from not-implemented.
	router := setupTestRouter(map[string]string{
		"AC/type":   powersupply.TypeMains,
		"AC/online": "1",
	})

	for _, path := range []string{"/v1/battery/info", "/v1/call/getBatteryInfo"} {
		w := doRequest(router, path)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("GET %s status = %d, want %d", path, w.Code, http.StatusServiceUnavailable)
		}

		var reply errorReply
		if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
			t.Fatalf("failed to unmarshal body: %v", err)
		}
		if reply.Kind != string(bridge.KindUnavailable) {
			t.Errorf("GET %s kind = %q, want %q", path, reply.Kind, bridge.KindUnavailable)
		}
	}
}

func TestOperationsRoute(t *testing.T) {
	router := setupTestRouter(mockCharging())

	w := doRequest(router, "/v1/operations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var ops []string
	if err := json.Unmarshal(w.Body.Bytes(), &ops); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}
	want := []string{bridge.OpGetBatteryInfo, bridge.OpGetBatteryLevel}
	if len(ops) != len(want) || ops[0] != want[0] || ops[1] != want[1] {
		t.Errorf("operations = %v, want %v", ops, want)
	}
}
