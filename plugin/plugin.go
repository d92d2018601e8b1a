// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"github.com/cons3rt/cons3rt.core/plugin/service/inventory"
)

// Cons3rtPlugin contains a collection of all CONS3RT plugin services.
type Cons3rtPlugin struct {
	// InventoryPlugin sources hosts from CONS3RT deployment runs.
	*inventory.InventoryPlugin
}

func NewCons3rtPlugin() *Cons3rtPlugin {
	return &Cons3rtPlugin{
		InventoryPlugin: &inventory.InventoryPlugin{},
	}
}
