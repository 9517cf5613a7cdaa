// Package seed carries the built-in BAXE tender corpus used to bootstrap an
// empty index.
package seed

// Document is one seed document: a canonical name plus its text, with blank
// lines marking paragraph boundaries for the chunker.
type Document struct {
	Name string
	Text string
}

// Corpus returns the built-in tender documents in seeding order.
func Corpus() []Document {
	return []Document{
		{
			Name: "Nolikums",
			Text: `BAXE risinājuma paplašināšana, pilnveidošana, uzturēšana un garantijas nodrošināšana.
Iepirkuma identifikācijas Nr. FM VID 2024/232/ANM.
Pasūtītājs: Valsts ieņēmumu dienests (VID), Talejas iela 1, Rīga, LV-1978, Latvija.
Tālrunis: +371 67122689, e-pasts: vid@vid.gov.lv.
Iepirkuma līguma ietvaros veikto darbu apmaksai var tikt izmantots Eiropas Savienības fondu finansējums.

Piedāvājuma iesniegšanas termiņš: 16.07.2024 plkst. 13:00.
Publicēšanas datums: 22.05.2024. Statuss: Noslēdzies.
Piedāvājumi jāiesniedz Elektronisko iepirkumu sistēmā (EIS) e-konkursu apakšsistēmā.
Piedāvājuma derīguma termiņš: 6 mēneši no piedāvājumu atvēršanas datuma.

Pretendentu kvalifikācijas prasības:
1. Pretendentam jābūt reģistrētam Elektronisko iepirkumu sistēmā (EIS).
2. Pretendentam jābūt pieredzei līdzīgu projektu īstenošanā.
3. Pretendentam jānodrošina kvalificēti speciālisti.
4. Pretendentam jāiesniedz piedāvājuma nodrošinājums.

Piedāvājuma izvēles kritērijs: zemākā cena.
Vērtēšana notiek pēc zemākās cenas principa - uzvar pretendents ar viszemāko kopējo piedāvājuma summu, kas atbilst visām kvalifikācijas prasībām.`,
		},
		{
			Name: "Tehniskā specifikācija",
			Text: `BAXE (Baltic X-ray Exchange) ir Baltijas valstu muitas iestāžu kopīga sistēma rentgena attēlu apmaiņai un analīzei.
Sistēma tiek izmantota kravas pārbaudēs uz robežām starp Latviju, Lietuvu un Igauniju.
BAXE nodrošina rentgena attēlu koplietošanu un konvertēšanu starp dažādiem formātiem.

BAXE komponentes:
1. Centrālais mezgls (CM) - sistēmas kodols, kas nodrošina datu apmaiņu starp visiem lokālajiem mezgliem.
2. Lokālie mezgli (LM) - atrodas katrā muitas kontroles punktā (MKP).
3. Rentgena kontroles sistēmas (RKS) - dažādu ražotāju rentgena iekārtas.
4. Attēlu analīzes modulis ar mākslīgo intelektu (AI).

Funkcionālās prasības:
- Notikumu izveide un aprakstīšana.
- Attēlu koplietošana un konvertēšana starp formātiem (ORF, DICOM, JPEG, PNG).
- Attēla analīze ar mākslīgo intelektu.
- Vēsturisko un jauno notikumu sasaiste.
- Meklēšana, datu atlase un filtrēšana.
- Auditācijas funkcionalitāte un kļūdu ziņojumu sistēma.
- Lietotāju tiesību pārvaldība, integrācija ar citām informācijas sistēmām, atskaišu ģenerēšana.

Infrastruktūras un nefunkcionālās prasības:
- Serveru un datubāzu prasības, drošības prasības (autentifikācija, autorizācija).
- BAXE jānodrošina 99.5% pieejamība.
- Sistēmai jāspēj apstrādāt vismaz 1000 notikumu dienā.
- Jāatbilst VDAR un citiem normatīvajiem aktiem.`,
		},
		{
			Name: "Esošās situācijas procesu apraksts",
			Text: `BAXE uzbūve un arhitektūra:
Sistēma sastāv no centrālā mezgla un lokālajiem mezgliem.
Centrālais mezgls atrodas VID serverī Rīgā, lokālie mezgli ir uzstādīti katrā muitas kontroles punktā.
Datu apmaiņa notiek caur drošu VPN savienojumu.

Esošie muitas kontroles punkti ar BAXE:
- Terehova MKP (Latvija-Krievija robeža).
- Grebņeva MKP (Latvija-Krievija robeža).
- Pāternieki MKP (Latvija-Baltkrievija robeža).
Plānotie jaunie MKP: Indras MKP, Kārsavas MKP, Liepājas MKP, Ventspils MKP.

Loģiskā esošās skanēšanas aparatūras pieslēgšanas shēma:
RKS -> Lokālais mezgls -> VPN -> Centrālais mezgls -> Lietotāju saskarne.
Atbalstītie rentgena iekārtu ražotāji: Smiths Detection, Nuctech, Rapiscan.`,
		},
		{
			Name: "Līguma projekts",
			Text: `Līguma priekšmets:
1. BAXE paplašināšana un pilnveidošana.
2. BAXE uzturēšana un atbalsta pakalpojumi.
3. BAXE garantijas nodrošināšana (36 mēneši).
4. BAXE tehnikas piegāde.
5. Apmācības VID darbiniekiem.
6. Standartprogrammatūras licenču piegāde.

Garantijas noteikumi:
- Garantijas periods: 36 mēneši.
- Garantijas ietvaros IZPILDĪTĀJS novērš visas kļūdas bez papildu samaksas.
- Kritisko kļūdu novēršanas laiks: 4 stundas, būtisku kļūdu: 24 stundas, nekritisko: 72 stundas.

Uzturēšanas prasības:
- IZPILDĪTĀJS nodrošina atbalstu darba dienās no 8:00 līdz 17:00, kritiskām kļūdām - 24/7.
- Konsultācijas par tehniskiem jautājumiem, regulāri atjauninājumi un drošības ielāpi.

Līguma izpildes termiņi:
- Paplašināšanas darbu izpildes termiņš: saskaņā ar projekta plānu.
- Uzturēšanas periods: 60 mēneši no līguma noslēgšanas.
- Garantijas periods: 36 mēneši pēc katra darba pieņemšanas.`,
		},
		{
			Name: "Finanšu piedāvājumu apkopojums",
			Text: `Pretendentu iesniegto finanšu piedāvājumu apkopojums.
Iepirkums: BAXE risinājuma paplašināšana, pilnveidošana, uzturēšana un garantijas nodrošināšana.
Iepirkuma identifikācijas Nr. FM VID 2024/232/ANM.
Pasūtītājs: Valsts ieņēmumu dienests (reģ. Nr. 90000069281).

Dokumenta avots: Elektronisko iepirkumu sistēmas e-konkursu apakšsistēmas ģenerēts apkopojums.
Piedāvājumu atvēršana notika Elektronisko iepirkumu sistēmā pēc iesniegšanas termiņa beigām 16.07.2024.
Vērtēšana notiek pēc zemākās cenas principa starp kvalificētajiem pretendentiem.`,
		},
	}
}
