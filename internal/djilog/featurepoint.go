package djilog

import "fmt"

// FeaturePoint identifies which keychain entry protects a record family.
type FeaturePoint uint16

// Feature points known to the keychain service.
const (
	FeaturePointBase         FeaturePoint = 1
	FeaturePointVision       FeaturePoint = 2
	FeaturePointWaypoint     FeaturePoint = 3
	FeaturePointAgriculture  FeaturePoint = 4
	FeaturePointAirLink      FeaturePoint = 5
	FeaturePointAfterSales   FeaturePoint = 6
	FeaturePointDJIFlyCustom FeaturePoint = 7
	FeaturePointPlaintext    FeaturePoint = 8
	FeaturePointFlightHub    FeaturePoint = 9
	FeaturePointGimbal       FeaturePoint = 10
	FeaturePointRC           FeaturePoint = 11
	FeaturePointCamera       FeaturePoint = 12
	FeaturePointBattery      FeaturePoint = 13
	FeaturePointFlySafe      FeaturePoint = 14
	FeaturePointSecurity     FeaturePoint = 15
)

var featurePointNames = map[FeaturePoint]string{
	FeaturePointBase:         "FR_Standardization_Feature_Base_1",
	FeaturePointVision:       "FR_Standardization_Feature_Vision_2",
	FeaturePointWaypoint:     "FR_Standardization_Feature_Waypoint_3",
	FeaturePointAgriculture:  "FR_Standardization_Feature_Agriculture_4",
	FeaturePointAirLink:      "FR_Standardization_Feature_AirLink_5",
	FeaturePointAfterSales:   "FR_Standardization_Feature_AfterSales_6",
	FeaturePointDJIFlyCustom: "FR_Standardization_Feature_DJIFlyCustom_7",
	FeaturePointPlaintext:    "FR_Standardization_Feature_Plaintext_8",
	FeaturePointFlightHub:    "FR_Standardization_Feature_FlightHub_9",
	FeaturePointGimbal:       "FR_Standardization_Feature_Gimbal_10",
	FeaturePointRC:           "FR_Standardization_Feature_RC_11",
	FeaturePointCamera:       "FR_Standardization_Feature_Camera_12",
	FeaturePointBattery:      "FR_Standardization_Feature_Battery_13",
	FeaturePointFlySafe:      "FR_Standardization_Feature_FlySafe_14",
	FeaturePointSecurity:     "FR_Standardization_Feature_Security_15",
}

// String returns the name the keychain service uses.
func (f FeaturePoint) String() string {
	if name, ok := featurePointNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FR_Standardization_Feature_Unknown_%d", uint16(f))
}
