package stations

// wsr88d lists the WSR-88D sites that publish DPR products.
var wsr88d = []Station{
	{Code: "TJUA", Lon: -66.0780, Lat: 18.1155},
	{Code: "KCBW", Lon: -67.8066, Lat: 46.0391},
	{Code: "KGYX", Lon: -70.2565, Lat: 43.8913},
	{Code: "KCXX", Lon: -73.1664, Lat: 44.5109},
	{Code: "KBOX", Lon: -71.1369, Lat: 41.9558},
	{Code: "KENX", Lon: -74.0639, Lat: 42.5865},
	{Code: "KBGM", Lon: -75.9847, Lat: 42.1997},
	{Code: "KBUF", Lon: -78.7369, Lat: 42.9488},
	{Code: "KTYX", Lon: -75.6799, Lat: 43.7556},
	{Code: "KOKX", Lon: -72.8638, Lat: 40.8655},
	{Code: "KDOX", Lon: -75.4400, Lat: 38.8257},
	{Code: "KDIX", Lon: -74.4108, Lat: 39.9470},
	{Code: "KPBZ", Lon: -80.2179, Lat: 40.5316},
	{Code: "KCCX", Lon: -78.0038, Lat: 40.9228},
	{Code: "KRLX", Lon: -81.7229, Lat: 38.3110},
	{Code: "KAKQ", Lon: -77.0073, Lat: 36.9840},
	{Code: "KFCX", Lon: -80.2736, Lat: 37.0242},
	{Code: "KLWX", Lon: -77.4778, Lat: 38.9753},
	{Code: "KMHX", Lon: -76.8762, Lat: 34.7759},
	{Code: "KRAX", Lon: -78.4897, Lat: 35.6654},
	{Code: "KLTX", Lon: -78.4291, Lat: 33.9891},
	{Code: "KCLX", Lon: -81.0423, Lat: 32.6554},
	{Code: "KCAE", Lon: -81.1184, Lat: 33.9487},
	{Code: "KGSP", Lon: -82.2200, Lat: 34.8833},
	{Code: "KFFC", Lon: -84.5658, Lat: 33.3635},
	{Code: "KVAX", Lon: -83.0019, Lat: 30.8903},
	{Code: "KJGX", Lon: -83.3508, Lat: 32.6755},
	{Code: "KEVX", Lon: -85.9215, Lat: 30.5649},
	{Code: "KJAX", Lon: -81.7018, Lat: 30.4846},
	{Code: "KBYX", Lon: -81.7032, Lat: 24.5974},
	{Code: "KMLB", Lon: -80.6540, Lat: 28.1131},
	{Code: "KAMX", Lon: -80.4127, Lat: 25.6111},
	{Code: "KTLH", Lon: -84.3289, Lat: 30.3975},
	{Code: "KTBW", Lon: -82.4017, Lat: 27.7054},
	{Code: "KBMX", Lon: -86.7698, Lat: 33.1722},
	{Code: "KEOX", Lon: -85.4592, Lat: 31.4605},
	{Code: "KHTX", Lon: -86.0837, Lat: 34.9305},
	{Code: "KMXX", Lon: -85.7897, Lat: 32.5366},
	{Code: "KMOB", Lon: -88.2397, Lat: 30.6795},
	{Code: "KDGX", Lon: -89.9846, Lat: 32.2797},
	{Code: "KGWX", Lon: -88.3293, Lat: 33.8967},
	{Code: "KMRX", Lon: -83.4017, Lat: 36.1685},
	{Code: "KNQA", Lon: -89.8734, Lat: 35.3447},
	{Code: "KOHX", Lon: -86.5625, Lat: 36.2472},
	{Code: "KHPX", Lon: -87.2854, Lat: 36.7368},
	{Code: "KJKL", Lon: -83.3130, Lat: 37.5907},
	{Code: "KLVX", Lon: -85.9438, Lat: 37.9753},
	{Code: "KPAH", Lon: -88.7720, Lat: 37.0683},
	{Code: "KILN", Lon: -83.8216, Lat: 39.4202},
	{Code: "KCLE", Lon: -81.8597, Lat: 41.4131},
	{Code: "KDTX", Lon: -83.4718, Lat: 42.6999},
	{Code: "KAPX", Lon: -84.7198, Lat: 44.9071},
	{Code: "KGRR", Lon: -85.5449, Lat: 42.8938},
	{Code: "KMQT", Lon: -87.5487, Lat: 46.5311},
	{Code: "KVWX", Lon: -87.7246, Lat: 38.2603},
	{Code: "KIND", Lon: -86.2803, Lat: 39.7074},
	{Code: "KIWX", Lon: -85.7000, Lat: 41.3586},
	{Code: "KLOT", Lon: -88.0843, Lat: 41.6044},
	{Code: "KILX", Lon: -89.3368, Lat: 40.1505},
	{Code: "KGRB", Lon: -88.1111, Lat: 44.4984},
	{Code: "KARX", Lon: -91.1915, Lat: 43.8227},
	{Code: "KMKX", Lon: -88.5506, Lat: 42.9678},
	{Code: "KDLH", Lon: -92.2097, Lat: 46.8368},
	{Code: "KMPX", Lon: -93.5654, Lat: 44.8488},
	{Code: "KDVN", Lon: -90.5809, Lat: 41.6115},
	{Code: "KDMX", Lon: -93.7229, Lat: 41.7311},
	{Code: "KEAX", Lon: -94.2644, Lat: 38.8102},
	{Code: "KSGF", Lon: -93.4006, Lat: 37.2352},
	{Code: "KLSX", Lon: -90.6828, Lat: 38.6986},
	{Code: "KSRX", Lon: -94.3619, Lat: 35.2904},
	{Code: "KLZK", Lon: -92.2621, Lat: 34.8365},
	{Code: "KPOE", Lon: -92.9762, Lat: 31.1556},
	{Code: "KLCH", Lon: -93.2161, Lat: 30.1253},
	{Code: "KLIX", Lon: -89.8256, Lat: 30.3367},
	{Code: "KSHV", Lon: -93.8412, Lat: 32.4508},
	{Code: "KAMA", Lon: -101.7092, Lat: 35.2334},
	{Code: "KEWX", Lon: -98.0285, Lat: 29.7039},
	{Code: "KBRO", Lon: -97.4189, Lat: 25.9159},
	{Code: "KCRP", Lon: -97.5112, Lat: 27.7840},
	{Code: "KFWS", Lon: -97.3031, Lat: 32.5730},
	{Code: "KDYX", Lon: -99.2542, Lat: 32.5386},
	{Code: "KEPZ", Lon: -106.6979, Lat: 31.8731},
	{Code: "KGRK", Lon: -97.3829, Lat: 30.7217},
	{Code: "KHGX", Lon: -95.0788, Lat: 29.4718},
	{Code: "KDFX", Lon: -100.2802, Lat: 29.2730},
	{Code: "KLBB", Lon: -101.8141, Lat: 33.6541},
	{Code: "KMAF", Lon: -102.1894, Lat: 31.9433},
	{Code: "KSJT", Lon: -100.4925, Lat: 31.3712},
	{Code: "KFDR", Lon: -98.9766, Lat: 34.3620},
	{Code: "KTLX", Lon: -97.2778, Lat: 35.3333},
	{Code: "KOUN", Lon: -97.4622, Lat: 35.2358},
	{Code: "KINX", Lon: -95.5642, Lat: 36.1750},
	{Code: "KVNX", Lon: -98.1279, Lat: 36.7406},
	{Code: "KDDC", Lon: -99.9688, Lat: 37.7608},
	{Code: "KGLD", Lon: -101.7004, Lat: 39.3667},
	{Code: "KTWX", Lon: -96.2326, Lat: 38.9969},
	{Code: "KICT", Lon: -97.4431, Lat: 37.6545},
	{Code: "KUEX", Lon: -98.4418, Lat: 40.3209},
	{Code: "KLNX", Lon: -100.5759, Lat: 41.9579},
	{Code: "KOAX", Lon: -96.3667, Lat: 41.3202},
	{Code: "KABR", Lon: -98.4132, Lat: 45.4558},
	{Code: "KUDX", Lon: -102.8298, Lat: 44.1248},
	{Code: "KFSD", Lon: -96.7293, Lat: 43.5877},
	{Code: "KBIS", Lon: -100.7605, Lat: 46.7709},
	{Code: "KMVX", Lon: -97.3256, Lat: 47.5279},
	{Code: "KMBX", Lon: -100.8644, Lat: 48.3930},
	{Code: "KBLX", Lon: -108.6068, Lat: 45.8537},
	{Code: "KGGW", Lon: -106.6252, Lat: 48.2064},
	{Code: "KTFX", Lon: -111.3855, Lat: 47.4595},
	{Code: "KMSX", Lon: -113.9864, Lat: 47.0412},
	{Code: "KCYS", Lon: -104.806, Lat: 41.1519},
	{Code: "KRIW", Lon: -108.4773, Lat: 43.0660},
	{Code: "KFTG", Lon: -104.5458, Lat: 39.7866},
	{Code: "KGJX", Lon: -108.2137, Lat: 39.0619},
	{Code: "KPUX", Lon: -104.1816, Lat: 38.4595},
	{Code: "KABX", Lon: -106.8239, Lat: 35.1497},
	{Code: "KFDX", Lon: -103.6186, Lat: 34.6341},
	{Code: "KHDX", Lon: -106.12, Lat: 33.0768},
	{Code: "KFSX", Lon: -111.1983, Lat: 34.5744},
	{Code: "KIWA", Lon: -111.67, Lat: 33.2891},
	{Code: "KEMX", Lon: -110.6304, Lat: 31.8937},
	{Code: "KYUX", Lon: -114.6567, Lat: 32.4953},
	{Code: "KICX", Lon: -112.8622, Lat: 37.5908},
	{Code: "KMTX", Lon: -112.448, Lat: 41.2627},
	{Code: "KCBX", Lon: -116.236, Lat: 43.4902},
	{Code: "KSFX", Lon: -112.686, Lat: 43.1055},
	{Code: "KLRX", Lon: -116.8025, Lat: 40.7396},
	{Code: "KESX", Lon: -114.8918, Lat: 35.7012},
	{Code: "KRGX", Lon: -119.462, Lat: 39.7541},
	{Code: "KBBX", Lon: -121.6316, Lat: 39.4956},
	{Code: "KEYX", Lon: -117.5608, Lat: 35.0979},
	{Code: "KBHX", Lon: -124.2918, Lat: 40.4986},
	{Code: "KVTX", Lon: -119.1795, Lat: 34.4116},
	{Code: "KDAX", Lon: -121.6778, Lat: 38.5011},
	{Code: "KNKX", Lon: -117.0418, Lat: 32.9189},
	{Code: "KMUX", Lon: -121.8984, Lat: 37.1551},
	{Code: "KHNX", Lon: -119.632, Lat: 36.3142},
	{Code: "KSOX", Lon: -117.6359, Lat: 33.8176},
	{Code: "KVBG", Lon: -120.3977, Lat: 34.8383},
	{Code: "PHKI", Lon: -159.5524, Lat: 21.8938},
	{Code: "PHKM", Lon: -155.778, Lat: 20.1254},
	{Code: "PHMO", Lon: -157.1802, Lat: 21.1327},
	{Code: "PHWA", Lon: -155.5688, Lat: 19.0950},
	{Code: "KMAX", Lon: -122.7173, Lat: 42.0810},
	{Code: "KPDT", Lon: -118.8529, Lat: 45.6906},
	{Code: "KRTX", Lon: -122.965, Lat: 45.7150},
	{Code: "KLGX", Lon: -124.1062, Lat: 47.1168},
	{Code: "KATX", Lon: -122.4957, Lat: 48.1945},
	{Code: "KOTX", Lon: -117.6267, Lat: 47.6803},
	{Code: "PABC", Lon: -161.8765, Lat: 60.7919},
	{Code: "PAPD", Lon: -147.5014, Lat: 65.0351},
	{Code: "PAHG", Lon: -151.2832, Lat: 60.6156},
	{Code: "PAKC", Lon: -156.6293, Lat: 58.6794},
	{Code: "PAIH", Lon: -146.3011, Lat: 59.4619},
	{Code: "PAEC", Lon: -165.2949, Lat: 64.5114},
	{Code: "PACG", Lon: -135.5524, Lat: 56.8521},
	{Code: "PGUA", Lon: 144.8111, Lat: 13.4559},
	{Code: "LPLA", Lon: -27.3216, Lat: 38.7302},
	{Code: "RKJK", Lon: 126.6222, Lat: 35.9241},
	{Code: "RKSG", Lon: 127.2856, Lat: 37.2076},
	{Code: "RODN", Lon: 127.9034, Lat: 26.3077},
}
