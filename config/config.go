/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config loads and validates the client and server configuration
// structs named in spec §6: server endpoint, timeouts, retry bound, loss
// simulation probabilities, invocation strategy and the ambient logging and
// metrics-listener settings.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	libdur "github.com/nabbar/rfas/duration"
	liberr "github.com/nabbar/rfas/errors"
)

// Strategy selects the server's InvocationStrategy.
type Strategy string

const (
	StrategyAtLeastOnce Strategy = "at-least-once"
	StrategyAtMostOnce  Strategy = "at-most-once"
)

// Logging carries the ambient logger settings shared by Client and Server.
type Logging struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warning error"`
}

// Metrics carries the optional Prometheus listener settings.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen" validate:"required_if=Enabled true"`
}

// Client is the client-side configuration of spec §6. ReceiveTimeout is
// authored in YAML/env as a duration.Parse string ("500ms", "2s", "1d") in
// ReceiveTimeoutRaw and resolved into ReceiveTimeout by LoadClient, so
// transport/client and every other caller keeps working with a plain
// time.Duration.
type Client struct {
	ServerAddress       string        `mapstructure:"server_address" validate:"required,hostname_port"`
	ReceiveTimeoutRaw   string        `mapstructure:"receive_timeout" validate:"required"`
	ReceiveTimeout      time.Duration `mapstructure:"-" validate:"-"`
	MaxRetries          int           `mapstructure:"max_retries" validate:"gte=0"`
	FreshnessIntervalMs uint64        `mapstructure:"freshness_interval_ms" validate:"gte=0"`
	SendLossProbability float64       `mapstructure:"send_loss_probability" validate:"gte=0,lte=1"`
	RecvLossProbability float64       `mapstructure:"recv_loss_probability" validate:"gte=0,lte=1"`
	Logging             Logging       `mapstructure:"logging"`
}

// Server is the server-side configuration of spec §6. ReplyCacheTTL follows
// the same ReplyCacheTTLRaw/ReplyCacheTTL split as Client.ReceiveTimeout.
type Server struct {
	ListenAddress       string        `mapstructure:"listen_address" validate:"required,hostname_port"`
	Root                string        `mapstructure:"root" validate:"required,dir"`
	Strategy            Strategy      `mapstructure:"strategy" validate:"required,oneof=at-least-once at-most-once"`
	Workers             int           `mapstructure:"workers" validate:"gte=1"`
	ReplyCacheTTLRaw    string        `mapstructure:"reply_cache_ttl" validate:"omitempty"`
	ReplyCacheTTL       time.Duration `mapstructure:"-" validate:"-"`
	SendLossProbability float64       `mapstructure:"send_loss_probability" validate:"gte=0,lte=1"`
	RecvLossProbability float64       `mapstructure:"recv_loss_probability" validate:"gte=0,lte=1"`
	Logging             Logging       `mapstructure:"logging"`
	Metrics             Metrics       `mapstructure:"metrics"`
}

var validate = validator.New()

// LoadClient reads a Client configuration from path (YAML/JSON/TOML, any
// format viper recognizes by extension) and validates it.
func LoadClient(path string) (Client, error) {
	var c Client
	c.MaxRetries = 3
	c.ReceiveTimeoutRaw = "2s"

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RFAS_CLIENT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return c, ErrLoad.Error(err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, ErrLoad.Error(err)
	}
	if err := validate.Struct(c); err != nil {
		return c, ErrValidate.Error(err)
	}

	d, err := libdur.Parse(c.ReceiveTimeoutRaw)
	if err != nil {
		return c, ErrValidate.Error(err)
	} else if d.Time() <= 0 {
		return c, liberr.Newf(ErrValidate.Uint16(), "receive_timeout must be greater than zero, got %q", c.ReceiveTimeoutRaw)
	}
	c.ReceiveTimeout = d.Time()

	return c, nil
}

// LoadServer reads a Server configuration from path and validates it.
func LoadServer(path string) (Server, error) {
	var s Server
	s.Workers = 8
	s.Strategy = StrategyAtMostOnce

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RFAS_SERVER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return s, ErrLoad.Error(err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, ErrLoad.Error(err)
	}
	if err := validate.Struct(s); err != nil {
		return s, ErrValidate.Error(err)
	}

	if s.ReplyCacheTTLRaw != "" {
		d, perr := libdur.Parse(s.ReplyCacheTTLRaw)
		if perr != nil {
			return s, ErrValidate.Error(perr)
		}
		s.ReplyCacheTTL = d.Time()
	}

	return s, nil
}
