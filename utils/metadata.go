package utils

// ProductSchema is the fixed list of keys kept from a raw Open Food Facts
// record. Keys absent upstream stay absent in the filtered record.
var ProductSchema = []string{
	"product_name",
	"brands",
	"categories",
	"quantity",
	"serving_size",
	"ingredients",
	"additives_tags",
	"allergens_tags",
	"nutriments",
	"nutriscore_grade",
	"nutriscore_score",
	"ecoscore_grade",
	"ecoscore_score",
	"nova_group",
	"selected_images",
	"labels_tags",
	"countries_tags",
	"stores",
	"packaging",
	"_keywords",
}

// FoodCategories groups display names under an icon category. FoodIcon scans
// this map to pick an icon slug for ingredients and nutrients.
var FoodCategories = map[string][]string{
	"Dairy":      {"Milk", "Cheese", "Butter", "Cream", "Yogurt", "Whey", "Lactose", "Skimmed Milk", "Milk Powder"},
	"Grains":     {"Wheat", "Wheat Flour", "Rice", "Oats", "Corn", "Barley", "Rye", "Maize", "Semolina", "Starch"},
	"Sweeteners": {"Sugar", "Sugars", "Glucose", "Fructose", "Glucose Syrup", "Honey", "Invert Sugar Syrup", "Maltodextrin"},
	"Fats":       {"Fat", "Palm Oil", "Sunflower Oil", "Rapeseed Oil", "Olive Oil", "Coconut Oil", "Vegetable Oil", "Saturated Fat"},
	"Proteins":   {"Protein", "Proteins", "Egg", "Eggs", "Soy", "Soya", "Chicken", "Beef", "Fish", "Peanuts"},
	"Fruits":     {"Apple", "Banana", "Orange", "Strawberry", "Grape", "Mango", "Lemon", "Raisins", "Cocoa", "Coconut"},
	"Vegetables": {"Tomato", "Onion", "Garlic", "Potato", "Carrot", "Spinach", "Peas", "Lettuce"},
	"Minerals":   {"Salt", "Sodium", "Calcium", "Iron", "Potassium", "Magnesium", "Zinc"},
	"Nutrients":  {"Energy", "Carbohydrates", "Fiber", "Fibre", "Cholesterol", "Vitamin C", "Vitamin D"},
}

// AdditiveNameTable maps additive codes (locale prefix already stripped) to
// display names. Unlisted codes resolve to "Unknown".
var AdditiveNameTable = map[string]string{
	"e100":  "Curcumin",
	"e101":  "Riboflavin",
	"e120":  "Cochineal",
	"e122":  "Azorubine",
	"e129":  "Allura Red AC",
	"e133":  "Brilliant Blue FCF",
	"e140":  "Chlorophylls",
	"e150a": "Plain Caramel",
	"e150d": "Sulphite Ammonia Caramel",
	"e160a": "Carotene",
	"e160c": "Paprika Extract",
	"e162":  "Beetroot Red",
	"e170":  "Calcium Carbonate",
	"e200":  "Sorbic Acid",
	"e202":  "Potassium Sorbate",
	"e211":  "Sodium Benzoate",
	"e220":  "Sulphur Dioxide",
	"e223":  "Sodium Metabisulphite",
	"e250":  "Sodium Nitrite",
	"e252":  "Potassium Nitrate",
	"e260":  "Acetic Acid",
	"e270":  "Lactic Acid",
	"e282":  "Calcium Propionate",
	"e296":  "Malic Acid",
	"e300":  "Ascorbic Acid",
	"e306":  "Tocopherols",
	"e307":  "Alpha-Tocopherol",
	"e322":  "Lecithins",
	"e330":  "Citric Acid",
	"e331":  "Sodium Citrates",
	"e334":  "Tartaric Acid",
	"e338":  "Phosphoric Acid",
	"e407":  "Carrageenan",
	"e410":  "Locust Bean Gum",
	"e412":  "Guar Gum",
	"e414":  "Acacia Gum",
	"e415":  "Xanthan Gum",
	"e420":  "Sorbitol",
	"e422":  "Glycerol",
	"e428":  "Gelatine",
	"e440":  "Pectins",
	"e450":  "Diphosphates",
	"e471":  "Mono- And Diglycerides Of Fatty Acids",
	"e472e": "Mono- And Diacetyl Tartaric Acid Esters",
	"e476":  "Polyglycerol Polyricinoleate",
	"e500":  "Sodium Carbonates",
	"e503":  "Ammonium Carbonates",
	"e621":  "Monosodium Glutamate",
	"e627":  "Disodium Guanylate",
	"e631":  "Disodium Inosinate",
	"e902":  "Candelilla Wax",
	"e903":  "Carnauba Wax",
	"e950":  "Acesulfame K",
	"e951":  "Aspartame",
	"e955":  "Sucralose",
	"e965":  "Maltitol",
}
