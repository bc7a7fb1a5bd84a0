// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"maps"
	"slices"
	"strings"
)

// EntityMap - business term to the tables it stands for, e.g. "revenue" -> orders, order_items.
type EntityMap map[string][]string

// DefaultEntityMap - returns a fresh copy of the built-in business vocabulary for the retail and
// manufacturing demo schema.
func DefaultEntityMap() EntityMap {
	return EntityMap{
		"campaign":      {"campaigns"},
		"conversion":    {"conversion_funnels"},
		"cost":          {"cost_allocations"},
		"customer":      {"customers"},
		"delivery":      {"shipments", "delivery_partners"},
		"department":    {"departments"},
		"employee":      {"employees"},
		"forecast":      {"demand_forecasts"},
		"inspection":    {"quality_inspections"},
		"inventory":     {"finished_goods_inventory"},
		"invoice":       {"invoices"},
		"manufactured":  {"production_runs", "production_lines"},
		"manufacturing": {"production_runs"},
		"marketing":     {"campaigns"},
		"material":      {"raw_materials"},
		"order":         {"orders"},
		"product":       {"products"},
		"production":    {"production_runs"},
		"profit":        {"profitability_analysis"},
		"quality":       {"quality_inspections"},
		"return":        {"returns"},
		"reorder":       {"safety_stock_levels"},
		"revenue":       {"orders", "order_items"},
		"safety":        {"safety_stock_levels"},
		"sales":         {"orders", "order_items"},
		"shipment":      {"shipments"},
		"shipping":      {"shipments"},
		"staff":         {"employees"},
		"stock":         {"finished_goods_inventory"},
		"supplier":      {"suppliers"},
		"transaction":   {"transactions"},
		"variant":       {"product_variants"},
		"warehouse":     {"warehouses"},
	}
}

// Normalize - returns a copy with lower-cased terms and table names. Tables of terms that collide after
// lower-casing are merged.
func (em EntityMap) Normalize() EntityMap {
	res := make(EntityMap, len(em))
	for term, tables := range em {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		for _, t := range tables {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" && !slices.Contains(res[term], t) {
				res[term] = append(res[term], t)
			}
		}
	}
	return res
}

// Terms - returns the sorted terms.
func (em EntityMap) Terms() []string {
	return slices.Sorted(maps.Keys(em))
}
