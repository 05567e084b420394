// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package stepparse

import "github.com/kraklabs/ifckit/pkg/model"

// materializeProperties is Phase E: walk every pending IfcPropertySet and
// IfcElementQuantity, resolve their member lists against the other
// pending entities Phase B stashed, and populate the PropertyTable /
// QuantityTable.
func (p *parser) materializeProperties() {
	for id, pe := range p.pending {
		switch pe.tag {
		case model.TagPropertySet:
			p.materializePropertySet(id, pe.args)
		case model.TagElementQuantity:
			p.materializeQuantitySet(id, pe.args)
		}
	}
}

func (p *parser) materializePropertySet(id uint32, args []Arg) {
	ps := model.PropertySet{ExpressID: id}
	ps.Name, _ = argAt(args, 2).AsString()

	for _, ref := range p.resolveRefList(id, argAt(args, 4)) {
		member, ok := p.pending[ref]
		if !ok || member.tag != model.TagPropertySingleValue {
			continue
		}
		name, _ := argAt(member.args, 0).AsString()
		unit, _ := argAt(member.args, 3).AsString()
		ps.Properties = append(ps.Properties, model.Property{
			Name:  name,
			Value: decodeValue(argAt(member.args, 2)),
			Unit:  unit,
		})
	}
	p.m.Properties.AddSet(ps)
}

func (p *parser) materializeQuantitySet(id uint32, args []Arg) {
	qs := model.QuantitySet{ExpressID: id}
	qs.Name, _ = argAt(args, 2).AsString()

	for _, ref := range p.resolveRefList(id, argAt(args, 5)) {
		member, ok := p.pending[ref]
		if !ok || !isQuantityTag(member.tag) {
			continue
		}
		name, _ := argAt(member.args, 0).AsString()
		value, _ := argAt(member.args, 3).AsReal()
		qs.Quantities = append(qs.Quantities, model.Quantity{
			Name:  name,
			Kind:  quantityKindFor(member.tag),
			Value: value,
		})
	}
	p.m.Quantities.AddSet(qs)
}

func quantityKindFor(tag model.TypeTag) model.QuantityKind {
	switch tag {
	case model.TagQuantityArea:
		return model.QuantityArea
	case model.TagQuantityVolume:
		return model.QuantityVolume
	case model.TagQuantityCount:
		return model.QuantityCount
	case model.TagQuantityWeight:
		return model.QuantityWeight
	default:
		return model.QuantityLength
	}
}

// valueKindForKeyword maps a STEP typed-value wrapper keyword (the
// IFCLABEL in IFCLABEL('x')) to the Value tag it decodes to. An
// unrecognized keyword defaults to ValueString, since the wrapped content
// is still a plain literal either way.
func valueKindForKeyword(keyword string) model.ValueKind {
	switch keyword {
	case "IFCREAL", "IFCLENGTHMEASURE", "IFCAREAMEASURE", "IFCVOLUMEMEASURE", "IFCPLANEANGLEMEASURE":
		return model.ValueReal
	case "IFCINTEGER", "IFCCOUNTMEASURE":
		return model.ValueInteger
	case "IFCBOOLEAN":
		return model.ValueBoolean
	case "IFCLOGICAL":
		return model.ValueLogical
	case "IFCIDENTIFIER":
		return model.ValueIdentifier
	case "IFCTEXT":
		return model.ValueText
	case "IFCLABEL":
		return model.ValueLabel
	default:
		return model.ValueString
	}
}

// decodeValue turns one already-parsed Arg (typically the NominalValue
// slot of an IfcPropertySingleValue) into a tagged model.Value.
func decodeValue(a Arg) model.Value {
	switch a.Kind {
	case ArgTyped:
		kind := valueKindForKeyword(a.Keyword)
		inner := argAt(a.List, 0)
		switch kind {
		case model.ValueReal:
			v, _ := inner.AsReal()
			return model.Value{Kind: kind, Num: v}
		case model.ValueInteger:
			if v, ok := inner.AsReal(); ok {
				return model.Value{Kind: kind, Int: int64(v)}
			}
			return model.Value{Kind: kind}
		case model.ValueBoolean, model.ValueLogical:
			b, _ := inner.AsBool()
			return model.Value{Kind: kind, Bool: b}
		default:
			s, _ := inner.AsString()
			return model.Value{Kind: kind, Str: s}
		}
	case ArgString:
		return model.Value{Kind: model.ValueString, Str: a.Str}
	case ArgReal:
		return model.Value{Kind: model.ValueReal, Num: a.Real}
	case ArgInteger:
		return model.Value{Kind: model.ValueInteger, Int: a.Int}
	case ArgEnum:
		return model.Value{Kind: model.ValueEnum, Str: a.Enum}
	case ArgRef:
		return model.Value{Kind: model.ValueReference, Ref: a.Ref}
	case ArgList:
		out := make([]model.Value, len(a.List))
		for i, item := range a.List {
			out[i] = decodeValue(item)
		}
		return model.Value{Kind: model.ValueList, List: out}
	default:
		return model.Value{}
	}
}
