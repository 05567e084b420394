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

package geomedit

import (
	"fmt"

	"github.com/kraklabs/ifckit/pkg/model"
)

// ConstraintViolation is returned by SetParameter when newValue would put a
// parameter outside its declared domain. Unlike a bounded-domain clamp, the
// Edit Layer's primary entry point rejects the edit outright and leaves the
// MutationView untouched (spec §8: setting Depth below the minimum is
// rejected, not floored).
type ConstraintViolation struct {
	Constraint model.Constraint
	Path       string
	Detail     string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation on %s: %s", e.Path, e.Detail)
}

// SetParameter validates newValue against param's declared constraints and,
// if it passes, records a GeometryMutation in view. On rejection the view is
// left exactly as it was — callers can safely retry with a corrected value.
func SetParameter(view *model.MutationView, modelID string, param model.GeometryParameter, newValue model.ParamValue) error {
	if !param.Editable {
		return &ConstraintViolation{Path: param.Path, Detail: "parameter is read-only"}
	}
	if newValue.Kind != param.ValueKind {
		return &ConstraintViolation{Path: param.Path, Detail: "value kind mismatch"}
	}
	if err := checkConstraints(param, newValue); err != nil {
		return err
	}

	view.Apply(model.GeometryMutation{
		ModelID:       modelID,
		EntityID:      param.OwningEntityID,
		ParameterPath: param.Path,
		OldValue:      param.Current,
		NewValue:      newValue,
	})
	return nil
}

func checkConstraints(param model.GeometryParameter, newValue model.ParamValue) error {
	for _, c := range param.Constraints {
		switch c {
		case model.ConstraintPositive:
			if newValue.Kind == model.ParamNumber && newValue.Number <= 0 {
				return &ConstraintViolation{Constraint: c, Path: param.Path, Detail: "value must be positive"}
			}
		case model.ConstraintMinValue:
			if newValue.Kind == model.ParamNumber && newValue.Number < MinDimension {
				return &ConstraintViolation{Constraint: c, Path: param.Path,
					Detail: fmt.Sprintf("value %.6g is below the minimum %.6g", newValue.Number, MinDimension)}
			}
		case model.ConstraintInteger:
			if newValue.Kind == model.ParamNumber && newValue.Number != float64(int64(newValue.Number)) {
				return &ConstraintViolation{Constraint: c, Path: param.Path, Detail: "value must be an integer"}
			}
		case model.ConstraintClosedProfile:
			if newValue.Kind == model.ParamProfile && len(newValue.Profile) < 3 {
				return &ConstraintViolation{Constraint: c, Path: param.Path, Detail: "a closed profile needs at least 3 points"}
			}
		}
	}
	return nil
}
