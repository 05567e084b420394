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

package stepwriter

import (
	"fmt"

	ifcerrors "github.com/kraklabs/ifckit/internal/errors"
)

// ProjectInfo seeds the Creator's preamble (spec §4.7 "Preamble").
type ProjectInfo struct {
	PersonGivenName  string
	PersonFamilyName string
	OrganizationName string
	ApplicationName  string
	ApplicationVersion string
	ProjectName      string
	SiteName         string
	BuildingName     string
	LengthUnit       string // "meter" | "millimeter"
	TimeStamp        int64  // epoch seconds
}

// Creator builds a model from scratch: preamble, spatial tree, and a
// per-storey catalog of elements, following the Creator path of spec §4.7.
type Creator struct {
	w *Writer

	ownerHistoryID   uint32
	originID         uint32
	zDirID           uint32
	xDirID           uint32
	worldPlacementID uint32
	bodyContextID    uint32
	axisContextID    uint32
	lengthFactor     float64 // 1.0 for meter, 0.001 for millimeter

	projectID  uint32
	siteID     uint32
	buildingID uint32

	storeys []storeyEntry

	styleCache    map[[4]float32]uint32 // rgba -> IfcSurfaceStyle id
	materialCache map[string]materialEntry

	elements map[uint32][]uint32 // storey expressId -> contained element expressIds
}

type storeyEntry struct {
	ID        uint32
	Name      string
	Elevation float64
}

type materialEntry struct {
	ID       uint32
	Elements []uint32
}

// NewCreator constructs a Writer and emits the full preamble: person,
// organization, application, owner history, shared geometry primitives,
// world placement, representation contexts, unit assignment, default
// surface style, and the Project/Site/Building triple (spec §4.7).
func NewCreator(opts Options, info ProjectInfo) (*Creator, error) {
	w := New(opts)
	c := &Creator{
		w:             w,
		styleCache:    make(map[[4]float32]uint32),
		materialCache: make(map[string]materialEntry),
		elements:      make(map[uint32][]uint32),
		lengthFactor:  1.0,
	}
	if info.LengthUnit == "millimeter" {
		c.lengthFactor = 0.001
	}

	personID := w.emitNew("IFCPERSON", fmt.Sprintf("$,%s,%s,$,$,$,$,$",
		formatString(info.PersonFamilyName), formatString(info.PersonGivenName)))
	orgID := w.emitNew("IFCORGANIZATION", fmt.Sprintf("$,%s,$,$,$", formatString(info.OrganizationName)))
	personOrgID := w.emitNew("IFCPERSONANDORGANIZATION", fmt.Sprintf("%s,%s,$", formatRef(personID), formatRef(orgID)))
	appID := w.emitNew("IFCAPPLICATION", fmt.Sprintf("%s,%s,%s,'ifckit'",
		formatRef(orgID), formatString(info.ApplicationVersion), formatString(info.ApplicationName)))
	c.ownerHistoryID = w.emitNew("IFCOWNERHISTORY", fmt.Sprintf("%s,%s,$,.ADDED.,$,$,$,%d",
		formatRef(personOrgID), formatRef(appID), info.TimeStamp))

	originID := w.emitNew("IFCCARTESIANPOINT", reals(0, 0, 0))
	zDirID := w.emitNew("IFCDIRECTION", reals(0, 0, 1))
	xDirID := w.emitNew("IFCDIRECTION", reals(1, 0, 0))
	c.originID, c.zDirID, c.xDirID = originID, zDirID, xDirID

	worldAxisID := w.emitNew("IFCAXIS2PLACEMENT3D", fmt.Sprintf("%s,%s,%s", formatRef(originID), formatRef(zDirID), formatRef(xDirID)))
	c.worldPlacementID = w.emitNew("IFCLOCALPLACEMENT", fmt.Sprintf("$,%s", formatRef(worldAxisID)))

	geomContextID := w.emitNew("IFCGEOMETRICREPRESENTATIONCONTEXT",
		fmt.Sprintf("$,'Model',3,1.E-05,%s,$", formatRef(worldAxisID)))
	c.bodyContextID = w.emitNew("IFCGEOMETRICREPRESENTATIONSUBCONTEXT",
		fmt.Sprintf("'Body','Model',*,*,*,*,%s,$,.MODEL_VIEW.,$", formatRef(geomContextID)))
	c.axisContextID = w.emitNew("IFCGEOMETRICREPRESENTATIONSUBCONTEXT",
		fmt.Sprintf("'Axis','Model',*,*,*,*,%s,$,.GRAPH_VIEW.,$", formatRef(geomContextID)))

	lengthUnitID := c.emitLengthUnit()
	areaUnitID := w.emitNew("IFCSIUNIT", "*,.AREAUNIT.,$,.SQUARE_METRE.")
	volumeUnitID := w.emitNew("IFCSIUNIT", "*,.VOLUMEUNIT.,$,.CUBIC_METRE.")
	angleUnitID := w.emitNew("IFCSIUNIT", "*,.PLANEANGLEUNIT.,$,.RADIAN.")
	unitAssignID := w.emitNew("IFCUNITASSIGNMENT", refs(lengthUnitID, areaUnitID, volumeUnitID, angleUnitID))

	c.defaultSurfaceStyle()

	c.projectID = w.emitNew("IFCPROJECT", fmt.Sprintf("%s,%s,%s,$,$,$,$,%s,%s",
		mustGlobalID(w), formatRef(c.ownerHistoryID), formatString(info.ProjectName),
		formatList(formatRef(geomContextID)), formatRef(unitAssignID)))

	c.siteID = w.emitNew("IFCSITE", fmt.Sprintf("%s,%s,%s,$,$,%s,$,$,.ELEMENT.,$,$,$,$,$",
		mustGlobalID(w), formatRef(c.ownerHistoryID), formatString(info.SiteName), formatRef(c.worldPlacementID)))

	c.buildingID = w.emitNew("IFCBUILDING", fmt.Sprintf("%s,%s,%s,$,$,%s,$,$,.ELEMENT.,$,$,$",
		mustGlobalID(w), formatRef(c.ownerHistoryID), formatString(info.BuildingName), formatRef(c.worldPlacementID)))

	return c, nil
}

func mustGlobalID(w *Writer) string {
	id, err := w.NewGlobalID()
	if err != nil {
		// The preamble's ids are drawn long before any retry budget could
		// plausibly be exhausted; surface it as a panic-free empty id rather
		// than threading an error return through every emitNew call site.
		return ""
	}
	return formatString(id)
}

func (c *Creator) emitLengthUnit() uint32 {
	if c.lengthFactor == 1.0 {
		return c.w.emitNew("IFCSIUNIT", "*,.LENGTHUNIT.,$,.METRE.")
	}
	return c.w.emitNew("IFCSIUNIT", "*,.LENGTHUNIT.,.MILLI.,.METRE.")
}

// defaultSurfaceStyle registers the neutral concrete-grey style the spec
// names explicitly (spec §4.7 "Preamble").
func (c *Creator) defaultSurfaceStyle() uint32 {
	return c.styleFor([4]float32{0.6, 0.6, 0.6, 1.0})
}

// AddStorey registers a new IfcBuildingStorey aggregated under the
// building, returning its expressId for use as an AddX call's Storey
// argument.
func (c *Creator) AddStorey(name string, elevation float64) (uint32, error) {
	id, err := c.w.NewGlobalID()
	if err != nil {
		return 0, err
	}
	storeyID := c.w.emitNew("IFCBUILDINGSTOREY", fmt.Sprintf("%s,%s,%s,$,$,%s,$,$,.ELEMENT.,%s",
		formatString(id), formatRef(c.ownerHistoryID), formatString(name), formatRef(c.worldPlacementID), formatReal(elevation)))
	c.storeys = append(c.storeys, storeyEntry{ID: storeyID, Name: name, Elevation: elevation})
	return storeyID, nil
}

func (c *Creator) requireStorey(storey uint32) error {
	for _, s := range c.storeys {
		if s.ID == storey {
			return nil
		}
	}
	if c.w.opts.BestEffort {
		return nil
	}
	return ifcerrors.NewInternalError(
		"Writer precondition failed",
		fmt.Sprintf("Attempt to emit an element before storey #%d exists", storey),
		"Call AddStorey before adding elements to it, or pass BestEffort",
		nil,
	)
}

func (c *Creator) contain(storey, element uint32) {
	c.elements[storey] = append(c.elements[storey], element)
}

// Finalize emits the spatial-aggregation and containment relationships
// (spec §4.7 "Finalization") and returns the complete rendered file.
func (c *Creator) Finalize(description, fileName, author, organization string, timeStamp string) string {
	c.w.emitNew("IFCRELAGGREGATES", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatRef(c.projectID), refs(c.siteID)))
	c.w.emitNew("IFCRELAGGREGATES", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatRef(c.siteID), refs(c.buildingID)))

	storeyIDs := make([]uint32, len(c.storeys))
	for i, s := range c.storeys {
		storeyIDs[i] = s.ID
	}
	c.w.emitNew("IFCRELAGGREGATES", fmt.Sprintf("%s,%s,$,$,%s,%s",
		mustGlobalID(c.w), formatRef(c.ownerHistoryID), formatRef(c.buildingID), refs(storeyIDs...)))

	for _, s := range c.storeys {
		elems := c.elements[s.ID]
		if len(elems) == 0 {
			continue
		}
		c.w.emitNew("IFCRELCONTAINEDINSPATIALSTRUCTURE", fmt.Sprintf("%s,%s,$,$,%s,%s",
			mustGlobalID(c.w), formatRef(c.ownerHistoryID), refs(elems...), formatRef(s.ID)))
	}

	c.finalizeMaterials()

	return c.w.Render(description, fileName, timeStamp, []string{author}, []string{organization})
}
