package miwu

// The 192 wake-up inputs by vendor name. The first digit is the
// controller, the second the 1-based group, the third the subgroup:
// MIWU1_73 is controller 1, group 7 (vector WKINTG_1), subgroup 3.
const (
	// MIWU0 group 1 (WKINTA_0)
	MIWU0_10 Line = iota
	MIWU0_11
	MIWU0_12
	MIWU0_13
	MIWU0_14
	MIWU0_15
	MIWU0_16
	MIWU0_17

	// MIWU0 group 2 (WKINTB_0)
	MIWU0_20
	MIWU0_21
	MIWU0_22
	MIWU0_23
	MIWU0_24
	MIWU0_25
	MIWU0_26
	MIWU0_27

	// MIWU0 group 3 (WKINTC_0)
	MIWU0_30
	MIWU0_31
	MIWU0_32
	MIWU0_33
	MIWU0_34
	MIWU0_35
	MIWU0_36
	MIWU0_37

	// MIWU0 group 4 (WKINTD_0)
	MIWU0_40
	MIWU0_41
	MIWU0_42
	MIWU0_43
	MIWU0_44
	MIWU0_45
	MIWU0_46
	MIWU0_47

	// MIWU0 group 5 (WKINTE_0)
	MIWU0_50
	MIWU0_51
	MIWU0_52
	MIWU0_53
	MIWU0_54
	MIWU0_55
	MIWU0_56
	MIWU0_57

	// MIWU0 group 6 (WKINTF_0)
	MIWU0_60
	MIWU0_61
	MIWU0_62
	MIWU0_63
	MIWU0_64
	MIWU0_65
	MIWU0_66
	MIWU0_67

	// MIWU0 group 7 (WKINTG_0)
	MIWU0_70
	MIWU0_71
	MIWU0_72
	MIWU0_73
	MIWU0_74
	MIWU0_75
	MIWU0_76
	MIWU0_77

	// MIWU0 group 8 (WKINTH_0)
	MIWU0_80
	MIWU0_81
	MIWU0_82
	MIWU0_83
	MIWU0_84
	MIWU0_85
	MIWU0_86
	MIWU0_87

	// MIWU1 group 1 (WKINTA_1)
	MIWU1_10
	MIWU1_11
	MIWU1_12
	MIWU1_13
	MIWU1_14
	MIWU1_15
	MIWU1_16
	MIWU1_17

	// MIWU1 group 2 (WKINTB_1)
	MIWU1_20
	MIWU1_21
	MIWU1_22
	MIWU1_23
	MIWU1_24
	MIWU1_25
	MIWU1_26
	MIWU1_27

	// MIWU1 group 3 (WKINTC_1)
	MIWU1_30
	MIWU1_31
	MIWU1_32
	MIWU1_33
	MIWU1_34
	MIWU1_35
	MIWU1_36
	MIWU1_37

	// MIWU1 group 4 (WKINTD_1)
	MIWU1_40
	MIWU1_41
	MIWU1_42
	MIWU1_43
	MIWU1_44
	MIWU1_45
	MIWU1_46
	MIWU1_47

	// MIWU1 group 5 (WKINTE_1)
	MIWU1_50
	MIWU1_51
	MIWU1_52
	MIWU1_53
	MIWU1_54
	MIWU1_55
	MIWU1_56
	MIWU1_57

	// MIWU1 group 6 (WKINTF_1)
	MIWU1_60
	MIWU1_61
	MIWU1_62
	MIWU1_63
	MIWU1_64
	MIWU1_65
	MIWU1_66
	MIWU1_67

	// MIWU1 group 7 (WKINTG_1)
	MIWU1_70
	MIWU1_71
	MIWU1_72
	MIWU1_73
	MIWU1_74
	MIWU1_75
	MIWU1_76
	MIWU1_77

	// MIWU1 group 8 (WKINTH_1)
	MIWU1_80
	MIWU1_81
	MIWU1_82
	MIWU1_83
	MIWU1_84
	MIWU1_85
	MIWU1_86
	MIWU1_87

	// MIWU2 group 1 (WKINTA_2)
	MIWU2_10
	MIWU2_11
	MIWU2_12
	MIWU2_13
	MIWU2_14
	MIWU2_15
	MIWU2_16
	MIWU2_17

	// MIWU2 group 2 (WKINTB_2)
	MIWU2_20
	MIWU2_21
	MIWU2_22
	MIWU2_23
	MIWU2_24
	MIWU2_25
	MIWU2_26
	MIWU2_27

	// MIWU2 group 3 (WKINTC_2)
	MIWU2_30
	MIWU2_31
	MIWU2_32
	MIWU2_33
	MIWU2_34
	MIWU2_35
	MIWU2_36
	MIWU2_37

	// MIWU2 group 4 (WKINTD_2)
	MIWU2_40
	MIWU2_41
	MIWU2_42
	MIWU2_43
	MIWU2_44
	MIWU2_45
	MIWU2_46
	MIWU2_47

	// MIWU2 group 5 (WKINTE_2)
	MIWU2_50
	MIWU2_51
	MIWU2_52
	MIWU2_53
	MIWU2_54
	MIWU2_55
	MIWU2_56
	MIWU2_57

	// MIWU2 group 6 (WKINTF_2)
	MIWU2_60
	MIWU2_61
	MIWU2_62
	MIWU2_63
	MIWU2_64
	MIWU2_65
	MIWU2_66
	MIWU2_67

	// MIWU2 group 7 (WKINTG_2)
	MIWU2_70
	MIWU2_71
	MIWU2_72
	MIWU2_73
	MIWU2_74
	MIWU2_75
	MIWU2_76
	MIWU2_77

	// MIWU2 group 8 (WKINTH_2)
	MIWU2_80
	MIWU2_81
	MIWU2_82
	MIWU2_83
	MIWU2_84
	MIWU2_85
	MIWU2_86
	MIWU2_87
)
