package stepparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/ifckit/pkg/model"
)

const fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('test.ifc','2026-07-31T00:00:00',('Author'),('Org'),'ifckit','ifckit','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('1xS3BCk291SPw10bnGjeze',$,'My Project',$,$,$,$,$,$);
#2=IFCSITE('1xS3BCk291SPw10bnGjezf',$,'Site',$,$,$,$,$,.ELEMENT.,$,$,$,$,$);
#3=IFCBUILDING('1xS3BCk291SPw10bnGjezg',$,'Building',$,$,$,$,$,.ELEMENT.,$,$,$);
#4=IFCBUILDINGSTOREY('1xS3BCk291SPw10bnGjezh',$,'Ground Floor',$,$,$,$,$,.ELEMENT.,0.);
#5=IFCBUILDINGSTOREY('1xS3BCk291SPw10bnGjezi',$,'Level 1',$,$,$,$,$,.ELEMENT.,3.);
#10=IFCWALL('1xS3BCk291SPw10bnGjezj',$,'Wall-01',$,$,#20,#21,$);
#11=IFCDOOR('1xS3BCk291SPw10bnGjezk',$,'Door-01',$,$,#22,#23,$);
#50=IFCRELAGGREGATES('1xS3BCk291SPw10bnGjezl',$,$,$,#1,(#2));
#51=IFCRELAGGREGATES('1xS3BCk291SPw10bnGjezm',$,$,$,#2,(#3));
#52=IFCRELAGGREGATES('1xS3BCk291SPw10bnGjezn',$,$,$,#3,(#4,#5));
#53=IFCRELCONTAINEDINSPATIALSTRUCTURE('1xS3BCk291SPw10bnGjezo',$,$,$,(#10),#4);
#54=IFCRELVOIDSELEMENT('1xS3BCk291SPw10bnGjezp',$,$,$,#10,#60);
#60=IFCOPENINGELEMENT('1xS3BCk291SPw10bnGjezq',$,'Opening',$,$,$,$,$);
#55=IFCRELFILLSELEMENT('1xS3BCk291SPw10bnGjezr',$,$,$,#60,#11);
#70=IFCPROPERTYSET('1xS3BCk291SPw10bnGjezs',$,'Pset_WallCommon',$,(#71));
#71=IFCPROPERTYSINGLEVALUE('FireRating',$,IFCLABEL('F60'),$);
#72=IFCRELDEFINESBYPROPERTIES('1xS3BCk291SPw10bnGjezt',$,$,$,(#10),#70);
#80=IFCELEMENTQUANTITY('1xS3BCk291SPw10bnGjezu',$,'Qto_WallBaseQuantities',$,$,(#81));
#81=IFCQUANTITYAREA('NetSideArea',$,$,12.5,$);
#82=IFCRELDEFINESBYPROPERTIES('1xS3BCk291SPw10bnGjezv',$,$,$,(#10),#80);
#90=MALFORMED(unterminated
ENDSEC;
END-ISO-10303-21;
`

func TestParse_HeaderAndSchema(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, model.SchemaIFC4, m.Schema)
}

func TestParse_EntityDiscoveryAndGlobalID(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)

	assert.True(t, m.Entities.Exists(10))
	assert.Equal(t, model.TagWall, m.Entities.TypeTagOf(10))
	assert.Equal(t, "Wall-01", m.Entities.GetName(10))
	assert.Equal(t, "1xS3BCk291SPw10bnGjezj", m.Entities.GetGlobalID(10))

	id, ok := m.Entities.GetExpressIDByGlobalID("1xS3BCk291SPw10bnGjezj")
	assert.True(t, ok)
	assert.Equal(t, uint32(10), id)
}

func TestParse_Relationships(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)

	storey, ok := m.Entities.ContainedInStorey(10)
	assert.True(t, ok)
	assert.Equal(t, uint32(4), storey)

	assert.True(t, m.Entities.HasFlag(10, model.FlagHasOpenings))
	assert.True(t, m.Entities.HasFlag(11, model.FlagIsFilling))
	assert.True(t, m.Entities.HasFlag(10, model.FlagHasProperties))
	assert.True(t, m.Entities.HasFlag(10, model.FlagHasQuantities))
}

func TestParse_SpatialHierarchy(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), m.Spatial.ProjectID)
	assert.ElementsMatch(t, []uint32{4, 5}, m.Spatial.ByBuilding(3))
	assert.ElementsMatch(t, []uint32{10}, m.Spatial.ByStorey(4))
	assert.Equal(t, 3.0, m.Spatial.StoreyHeight(4))
}

func TestParse_Properties(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)

	psets := m.Properties.SetsFor(10)
	require.Len(t, psets, 1)
	assert.Equal(t, "Pset_WallCommon", psets[0].Name)
	require.Len(t, psets[0].Properties, 1)
	assert.Equal(t, "FireRating", psets[0].Properties[0].Name)
	assert.Equal(t, "F60", psets[0].Properties[0].Value.Str)
}

func TestParse_Quantities(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)

	qsets := m.Quantities.SetsFor(10)
	require.Len(t, qsets, 1)
	assert.Equal(t, "Qto_WallBaseQuantities", qsets[0].Name)
	require.Len(t, qsets[0].Quantities, 1)
	assert.Equal(t, model.QuantityArea, qsets[0].Quantities[0].Kind)
	assert.Equal(t, 12.5, qsets[0].Quantities[0].Value)
}

func TestParse_MalformedEntityIsNonFatal(t *testing.T) {
	m, err := Parse("m1", []byte(fixture))
	require.NoError(t, err)
	assert.Greater(t, m.Diagnostics.MalformedEntityCount(), 0)
}

func TestParse_MissingSchemaIsFatal(t *testing.T) {
	bad := `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('','',(''),(''),'','','');
ENDSEC;
DATA;
#1=IFCPROJECT('x',$,$,$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`
	_, err := Parse("m1", []byte(bad))
	require.Error(t, err)
	var headerErr *HeaderError
	assert.ErrorAs(t, err, &headerErr)
}
