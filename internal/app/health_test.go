package app

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Suite) TestHealth() {
	resp := s.get(s.client(), "/health")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "pass")
}

// The suite runs with ENV=test, which must behave like production as
// far as gin's debug mode is concerned.
func (s *Suite) TestReleaseModeOutsideDevelopment() {
	s.Equal(gin.ReleaseMode, gin.Mode())
}

func (s *Suite) TestMetrics() {
	resp := s.get(s.client(), "/metrics")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
