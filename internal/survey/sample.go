package survey

// Seed fills an empty project with a short demo route and a three-course
// asphalt build-up.
func Seed(p *Project) error {
	for _, st := range [][2]string{
		{"0", "2.5"}, {"10.5", "3.2"}, {"25", "2.8"}, {"40.3", "4.1"}, {"55.7", "3.5"},
	} {
		if _, err := p.AddStation(st[0], st[1]); err != nil {
			return err
		}
	}
	for _, l := range []LayerInput{
		{Name: "Asphaltdeckschicht", Recipe: "AC 11 D S", Density: "2.3", Thickness: "4", Units: UnitsGramCentimeter},
		{Name: "Asphalttragschicht", Recipe: "AC 22 T S", Density: "2.4", Thickness: "8", Units: UnitsGramCentimeter},
		{Name: "Schottertragschicht", Recipe: "STS 0/32", Density: "2.2", Thickness: "20", Units: UnitsGramCentimeter},
	} {
		if _, err := p.AddLayer(l); err != nil {
			return err
		}
	}
	return nil
}
