package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() ServerParameters {
	return ServerParameters{
		IP:       "0.0.0.0",
		Port:     8888,
		LogLevel: "info",
		AppClass: DefaultAppClass,
	}
}

func TestCheckAcceptsValidParameters(t *testing.T) {
	require.NoError(t, validParams().Check())
}

func TestCheckRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerParameters)
	}{
		{"negative port", func(p *ServerParameters) { p.Port = -1 }},
		{"port above range", func(p *ServerParameters) { p.Port = 70000 }},
		{"empty ip", func(p *ServerParameters) { p.IP = "" }},
		{"unknown log level", func(p *ServerParameters) { p.LogLevel = "loud" }},
		{"empty app class", func(p *ServerParameters) { p.AppClass = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Check()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid server parameters")
		})
	}
}

func TestCheckAllowsEmptyLogLevel(t *testing.T) {
	p := validParams()
	p.LogLevel = ""
	assert.NoError(t, p.Check())
}
