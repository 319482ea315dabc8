package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battbridge/battd/pkg/bridge"
	"github.com/battbridge/battd/pkg/version"
)

// errorReply is the wire shape of a failed bridge call. Kind is machine
// readable; Message is for display.
type errorReply struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// abortWithBridgeError converts a bridge error into the matching HTTP
// status. Not-implemented and unavailable get distinct codes so clients
// can tell a contract mismatch from a host condition.
func abortWithBridgeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch bridge.KindOf(err) {
	case bridge.KindNotImplemented:
		status = http.StatusNotImplemented
	case bridge.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	c.IndentedJSON(status, errorReply{
		Kind:    string(bridge.KindOf(err)),
		Message: err.Error(),
	})
	_ = c.AbortWithError(status, err)
}

func getBatteryLevel(c *gin.Context) {
	level, err := hostBridge.GetBatteryLevel()
	if err != nil {
		logrus.Errorf("getBatteryLevel failed: %v", err)
		abortWithBridgeError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, level)
}

func getBatteryInfo(c *gin.Context) {
	info, err := hostBridge.GetBatteryInfo()
	if err != nil {
		logrus.Errorf("getBatteryInfo failed: %v", err)
		abortWithBridgeError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, info)
}

func callOperation(c *gin.Context) {
	name := c.Param("operation")

	ret, err := hostBridge.Call(name)
	if err != nil {
		logrus.Errorf("call %q failed: %v", name, err)
		abortWithBridgeError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, ret)
}

func getOperations(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, hostBridge.Operations())
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
