package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
)

type AppInfo struct {
	Name      string    `json:"name"`
	Env       string    `json:"env"`
	Version   string    `json:"version"`
	GoVersion string    `json:"goVersion"`
	StartedAt time.Time `json:"startedAt"`
}

type DefaultUtilRoute struct {
	Info AppInfo
}

// NewUtilRoute fills the version from the module build info when the
// binary carries one.
func NewUtilRoute(name, env string) *DefaultUtilRoute {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}

	return &DefaultUtilRoute{Info: AppInfo{
		Name:      name,
		Env:       env,
		Version:   version,
		GoVersion: runtime.Version(),
		StartedAt: time.Now().UTC(),
	}}
}

// Health answers the container healthcheck.
func (u *DefaultUtilRoute) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (u *DefaultUtilRoute) GetInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, u.Info)
}
