// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the mirror client runtime.
//
// It pulls every enabled collection from a peer once at startup, then keeps
// pulling on a fixed interval until the process is asked to stop.
package client
