package archive

import "testing"

func TestMatchesType(t *testing.T) {
	cases := []struct {
		name     string
		fileType FileType
		want     bool
	}{
		{"2009_10_16_02202.JPG", TypeImage, true},
		{"2009_10_16_02202.jpg", TypeImage, true},
		{"notaframe.JPG", TypeImage, false},
		{"DMS_1381721_04474_20101116_14199922.tif", TypeOrtho, true},
		{"DMS_1381721_04474_20101116_14199922.tif.xml", TypeOrtho, false},
		{"IODMS3_20091016_17534868_02202_DEM.tif", TypeDEM, true},
		{"DMS_1381721_04474_20101116_14199922.tif", TypeDEM, false},
		{"ILVIS2_AQ2011_1020_R1203_049752.TXT", TypeLVIS, true},
		{"ILATM1B_20111018_145455.ATM4BT4.qi", TypeATM1, true},
		{"ILATM1B_20091016_165112.atm4cT3.qi", TypeATM1, true},
		{"ILATM1B_20160713_195419.ATM5BT5.h5", TypeATM2, true},
		{"ILATM1B_20160713_195419.ATM5BT5.h5", TypeATM1, false},
		{"Parent Directory", TypeImage, false},
	}
	for _, c := range cases {
		if got := MatchesType(c.name, c.fileType); got != c.want {
			t.Errorf("MatchesType(%q, %s) = %v, want %v", c.name, c.fileType, got, c.want)
		}
	}
}

func TestFrameNumber(t *testing.T) {
	cases := []struct {
		name     string
		fileType FileType
		want     int
	}{
		{"2009_10_16_02202.JPG", TypeImage, 2202},
		{"DMS_1381721_04474_20101116_14199922.tif", TypeOrtho, 4474},
		{"IODMS3_20091016_17534868_02202_DEM.tif", TypeDEM, 2202},
		{"ILVIS2_AQ2011_1020_R1203_049752.TXT", TypeLVIS, 49752},
		{"ILATM1B_20111018_145455.ATM4BT4.qi", TypeATM1, 145455},
		{"ILATM1B_20160713_195419.ATM5BT5.h5", TypeATM2, 195419},
	}
	for _, c := range cases {
		got, err := FrameNumber(c.name, c.fileType)
		if err != nil {
			t.Errorf("FrameNumber(%q, %s) error: %v", c.name, c.fileType, err)
			continue
		}
		if got != c.want {
			t.Errorf("FrameNumber(%q, %s) = %d, want %d", c.name, c.fileType, got, c.want)
		}
	}
}

func TestFrameNumberErrors(t *testing.T) {
	if _, err := FrameNumber("nodigits.JPG", TypeImage); err == nil {
		t.Error("expected error for filename without digits")
	}
	if _, err := FrameNumber("DMS.tif", TypeOrtho); err == nil {
		t.Error("expected error for ortho filename without enough tokens")
	}
}
