// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("all services initialize in order", func(t *testing.T) {
		log := &callLog{}
		services := []Service{
			&mockInitShutdown{mockService: mockService{name: "session", log: log}},
			&mockService{name: "plain"},
			&mockInitShutdown{mockService: mockService{name: "limits", log: log}},
		}

		require.NoError(t, Init(nil, services))
		assert.Equal(t, []string{"init:session", "init:limits"}, log.list())
	})

	t.Run("failure shuts down initialized services in reverse", func(t *testing.T) {
		log := &callLog{}
		initErr := errors.New("smu timeout")
		services := []Service{
			&mockInitShutdown{mockService: mockService{name: "a", log: log}},
			&mockInitShutdown{mockService: mockService{name: "b", log: log}},
			&mockInitShutdown{mockService: mockService{name: "c", log: log}, initErr: initErr},
			&mockInitShutdown{mockService: mockService{name: "d", log: log}},
		}

		err := Init(nil, services)
		require.Error(t, err)
		assert.ErrorIs(t, err, initErr)
		assert.Contains(t, err.Error(), "failed to initialize service c")
		assert.Equal(t, []string{"init:a", "init:b", "init:c", "shutdown:b", "shutdown:a"}, log.list())
	})

	t.Run("shutdown errors are joined", func(t *testing.T) {
		shutdownErr := errors.New("release failed")
		initErr := errors.New("boom")
		services := []Service{
			&mockInitShutdown{mockService: mockService{name: "a"}, shutdownErr: shutdownErr},
			&mockInitShutdown{mockService: mockService{name: "b"}, initErr: initErr},
		}

		err := Init(nil, services)
		assert.ErrorIs(t, err, initErr)
		assert.ErrorIs(t, err, shutdownErr)
	})
}
