package daemon

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/config"
	"github.com/charlie0129/powerstate/pkg/version"
)

// getPowerState always answers with a PowerInfo. Provider failures are
// reported as the unknown state. With ?cached=true the last polled value is
// returned without querying the provider.
func (d *Daemon) getPowerState(c *gin.Context) {
	if cached, _ := strconv.ParseBool(c.Query("cached")); cached {
		info, _ := d.Last()
		c.IndentedJSON(http.StatusOK, info)
		return
	}

	snap, _ := d.Poll(c.Request.Context())
	c.IndentedJSON(http.StatusOK, snap.Info)
}

func (d *Daemon) getPowerSources(c *gin.Context) {
	snap, err := d.Poll(c.Request.Context())
	if err != nil {
		logrus.Errorf("getPowerSources failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, snap)
}

func (d *Daemon) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(d.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// streamEvents sends power.state events as server-sent events until the
// client goes away or the daemon shuts down.
func (d *Daemon) streamEvents(c *gin.Context) {
	ch, unsubscribe := d.hub.Subscribe()
	defer unsubscribe()

	// Flush headers so clients know the stream is established.
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-d.done:
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
