package hir

// Typed arena indices. The zero value of each index type is "none": every
// arena reserves slot 0 with a nil node.
type (
	ExpIdx    int
	PatIdx    int
	TyIdx     int
	DecIdx    int
	StrDecIdx int
	StrExpIdx int
	SigExpIdx int
	SpecIdx   int
)

// SConKind classifies special constants. The statics only needs the kind;
// the literal text is kept for display.
type SConKind int

const (
	SConInt SConKind = iota
	SConReal
	SConWord
	SConChar
	SConString
)

// SCon is a special constant.
type SCon struct {
	Kind SConKind
	Text string
}

// Exp nodes.

type Exp interface{ isExp() }

// ExpSCon is a constant expression.
type ExpSCon struct{ SCon SCon }

// ExpPath references a value by (possibly qualified) name.
type ExpPath struct{ Path Path }

// ExpRow is one labeled field of a record expression.
type ExpRow struct {
	Lab Lab
	Exp ExpIdx
}

// ExpRecord is a record (or tuple) expression.
type ExpRecord struct{ Rows []ExpRow }

// ExpLet is `let decs in body end`.
type ExpLet struct {
	Decs []DecIdx
	Body ExpIdx
}

// Arm is one `pat => exp` arm of a match.
type Arm struct {
	Pat PatIdx
	Exp ExpIdx
}

// ExpFn is `fn match`. Case expressions and if/else are lowered to
// application of a Fn before the statics sees them.
type ExpFn struct{ Arms []Arm }

// ExpApp is function application.
type ExpApp struct {
	Fn  ExpIdx
	Arg ExpIdx
}

// ExpHandle is `exp handle match`.
type ExpHandle struct {
	Exp  ExpIdx
	Arms []Arm
}

// ExpRaise is `raise exp`.
type ExpRaise struct{ Exp ExpIdx }

// ExpTyped is `exp : ty`.
type ExpTyped struct {
	Exp ExpIdx
	Ty  TyIdx
}

func (ExpSCon) isExp()   {}
func (ExpPath) isExp()   {}
func (ExpRecord) isExp() {}
func (ExpLet) isExp()    {}
func (ExpFn) isExp()     {}
func (ExpApp) isExp()    {}
func (ExpHandle) isExp() {}
func (ExpRaise) isExp()  {}
func (ExpTyped) isExp()  {}

// Pat nodes.

type Pat interface{ isPat() }

// PatWild is `_`.
type PatWild struct{}

// PatSCon is a constant pattern.
type PatSCon struct{ SCon SCon }

// PatCon is either a variable binding (single unqualified name that is
// not a constructor in scope, Arg absent) or a constructor pattern.
type PatCon struct {
	Path Path
	Arg  PatIdx
}

// PatRow is one labeled field of a record pattern.
type PatRow struct {
	Lab Lab
	Pat PatIdx
}

// PatRecord is a record pattern; AllowsOther is true when the pattern
// ends in `...`.
type PatRecord struct {
	Rows        []PatRow
	AllowsOther bool
}

// PatTyped is `pat : ty`.
type PatTyped struct {
	Pat PatIdx
	Ty  TyIdx
}

// PatAs is a layered pattern `name as pat`.
type PatAs struct {
	Name Name
	Pat  PatIdx
}

// PatOr is an or-pattern; every alternative must bind the same names at
// the same types.
type PatOr struct {
	First PatIdx
	Rest  []PatIdx
}

func (PatWild) isPat()   {}
func (PatSCon) isPat()   {}
func (PatCon) isPat()    {}
func (PatRecord) isPat() {}
func (PatTyped) isPat()  {}
func (PatAs) isPat()     {}
func (PatOr) isPat()     {}

// Ty nodes.

type Ty interface{ isTy() }

// TyVar is a user type variable, `'a` or `''a`.
type TyVar struct{ Name Name }

// IsEquality reports whether the variable demands an equality type.
func (t TyVar) IsEquality() bool {
	return len(t.Name) >= 2 && t.Name[0] == '\'' && t.Name[1] == '\''
}

// TyRow is one labeled field of a record type.
type TyRow struct {
	Lab Lab
	Ty  TyIdx
}

// TyRecord is a record type.
type TyRecord struct{ Rows []TyRow }

// TyCon applies a (possibly qualified) type constructor to arguments.
type TyCon struct {
	Args []TyIdx
	Path Path
}

// TyFn is a function type.
type TyFn struct {
	Param TyIdx
	Res   TyIdx
}

func (TyVar) isTy()    {}
func (TyRecord) isTy() {}
func (TyCon) isTy()    {}
func (TyFn) isTy()     {}

// Dec nodes (core declarations).

type Dec interface{ isDec() }

// ValBind is one `pat = exp` binding of a val declaration.
type ValBind struct {
	Pat PatIdx
	Exp ExpIdx
}

// DecVal is `val ('tyvars) [rec] pat = exp and ...`.
type DecVal struct {
	Rec    bool
	TyVars []Name
	Binds  []ValBind
}

// TyBind is one binding of a type declaration.
type TyBind struct {
	TyVars []Name
	Name   Name
	Ty     TyIdx
}

// DecTy is `type tyvars name = ty and ...`.
type DecTy struct{ Binds []TyBind }

// ConBind is one constructor of a datatype; Arg is 0 for a nullary
// constructor.
type ConBind struct {
	Name Name
	Arg  TyIdx
}

// DatBind is one datatype binding.
type DatBind struct {
	TyVars []Name
	Name   Name
	Cons   []ConBind
}

// DecDatatype is `datatype ... and ...`.
type DecDatatype struct{ Binds []DatBind }

// DecDatatypeCopy is `datatype name = datatype path`.
type DecDatatypeCopy struct {
	Name Name
	Path Path
}

// ExBind is one exception binding: a new exception with an optional
// parameter type, or (when Alias is non-nil) a rebinding of an existing
// exception.
type ExBind struct {
	Name  Name
	Param TyIdx
	Alias *Path
}

// DecException is `exception ... and ...`.
type DecException struct{ Binds []ExBind }

// DecLocal is `local decs in decs end`.
type DecLocal struct {
	Local []DecIdx
	In    []DecIdx
}

// DecOpen is `open path ...`.
type DecOpen struct{ Paths []Path }

// DecSeq is a sequence of declarations.
type DecSeq struct{ Decs []DecIdx }

func (DecVal) isDec()          {}
func (DecTy) isDec()           {}
func (DecDatatype) isDec()     {}
func (DecDatatypeCopy) isDec() {}
func (DecException) isDec()    {}
func (DecLocal) isDec()        {}
func (DecOpen) isDec()         {}
func (DecSeq) isDec()          {}

// StrDec nodes (structure-level declarations).

type StrDec interface{ isStrDec() }

// AscriptionKind distinguishes transparent (`:`) from opaque (`:>`)
// signature ascription.
type AscriptionKind int

const (
	Transparent AscriptionKind = iota
	Opaque
)

// StrDecDec wraps a core declaration at structure level.
type StrDecDec struct{ Dec DecIdx }

// StrDecStructure is `structure name [ascription] = strexp`.
type StrDecStructure struct {
	Name   Name
	StrExp StrExpIdx
}

// StrDecLocal is `local strdecs in strdecs end`.
type StrDecLocal struct {
	Local []StrDecIdx
	In    []StrDecIdx
}

// StrDecSeq is a sequence.
type StrDecSeq struct{ Decs []StrDecIdx }

// StrDecSignature is `signature name = sigexp`.
type StrDecSignature struct {
	Name   Name
	SigExp SigExpIdx
}

// StrDecFunctor is `functor name (param : sigexp) = strexp`.
type StrDecFunctor struct {
	Name      Name
	ParamName Name
	ParamSig  SigExpIdx
	Body      StrExpIdx
}

func (StrDecDec) isStrDec()       {}
func (StrDecStructure) isStrDec() {}
func (StrDecLocal) isStrDec()     {}
func (StrDecSeq) isStrDec()       {}
func (StrDecSignature) isStrDec() {}
func (StrDecFunctor) isStrDec()   {}

// StrExp nodes.

type StrExp interface{ isStrExp() }

// StrExpStruct is `struct strdecs end`.
type StrExpStruct struct{ Decs []StrDecIdx }

// StrExpPath references a structure by name.
type StrExpPath struct{ Path Path }

// StrExpAscription is `strexp : sigexp` or `strexp :> sigexp`.
type StrExpAscription struct {
	StrExp StrExpIdx
	SigExp SigExpIdx
	Kind   AscriptionKind
}

// StrExpApp is functor application.
type StrExpApp struct {
	Functor Name
	Arg     StrExpIdx
}

// StrExpLet is `let strdecs in strexp end`.
type StrExpLet struct {
	Decs   []StrDecIdx
	StrExp StrExpIdx
}

func (StrExpStruct) isStrExp()     {}
func (StrExpPath) isStrExp()       {}
func (StrExpAscription) isStrExp() {}
func (StrExpApp) isStrExp()        {}
func (StrExpLet) isStrExp()        {}

// SigExp nodes.

type SigExp interface{ isSigExp() }

// SigExpSpec is `sig specs end`.
type SigExpSpec struct{ Specs []SpecIdx }

// SigExpName references a bound signature.
type SigExpName struct{ Name Name }

// SigExpWhereType is `sigexp where type tyvars path = ty`.
type SigExpWhereType struct {
	SigExp SigExpIdx
	TyVars []Name
	Path   Path
	Ty     TyIdx
}

func (SigExpSpec) isSigExp()      {}
func (SigExpName) isSigExp()      {}
func (SigExpWhereType) isSigExp() {}

// Spec nodes (signature specifications).

type Spec interface{ isSpec() }

// SpecVal is `val name : ty`.
type SpecVal struct {
	Name Name
	Ty   TyIdx
}

// SpecTy is `type tyvars name` or `eqtype tyvars name` (abstract).
type SpecTy struct {
	TyVars   []Name
	Name     Name
	Equality bool
}

// SpecTyEq is `type tyvars name = ty` (manifest).
type SpecTyEq struct {
	TyVars []Name
	Name   Name
	Ty     TyIdx
}

// SpecDatatype is a datatype specification.
type SpecDatatype struct{ Binds []DatBind }

// SpecException is `exception name [of ty]`.
type SpecException struct {
	Name  Name
	Param TyIdx
}

// SpecStr is `structure name : sigexp`.
type SpecStr struct {
	Name   Name
	SigExp SigExpIdx
}

// SpecInclude is `include sigexp`.
type SpecInclude struct{ SigExp SigExpIdx }

func (SpecVal) isSpec()       {}
func (SpecTy) isSpec()        {}
func (SpecTyEq) isSpec()      {}
func (SpecDatatype) isSpec()  {}
func (SpecException) isSpec() {}
func (SpecStr) isSpec()       {}
func (SpecInclude) isSpec()   {}

// Arenas holds every node of one compilation unit. Construct with
// NewArenas; allocate nodes with the typed methods, each of which records
// the node's source range.
type Arenas struct {
	exps      []Exp
	pats      []Pat
	tys       []Ty
	decs      []Dec
	strDecs   []StrDec
	strExps   []StrExp
	sigExps   []SigExp
	specs     []Spec
	expRng    []Range
	patRng    []Range
	tyRng     []Range
	decRng    []Range
	strDecRng []Range
	strExpRng []Range
	sigExpRng []Range
	specRng   []Range
}

// NewArenas returns empty arenas with slot 0 of every arena reserved.
func NewArenas() *Arenas {
	return &Arenas{
		exps:      make([]Exp, 1),
		pats:      make([]Pat, 1),
		tys:       make([]Ty, 1),
		decs:      make([]Dec, 1),
		strDecs:   make([]StrDec, 1),
		strExps:   make([]StrExp, 1),
		sigExps:   make([]SigExp, 1),
		specs:     make([]Spec, 1),
		expRng:    make([]Range, 1),
		patRng:    make([]Range, 1),
		tyRng:     make([]Range, 1),
		decRng:    make([]Range, 1),
		strDecRng: make([]Range, 1),
		strExpRng: make([]Range, 1),
		sigExpRng: make([]Range, 1),
		specRng:   make([]Range, 1),
	}
}

func (a *Arenas) Exp(e Exp, r Range) ExpIdx {
	a.exps = append(a.exps, e)
	a.expRng = append(a.expRng, r)
	return ExpIdx(len(a.exps) - 1)
}

func (a *Arenas) Pat(p Pat, r Range) PatIdx {
	a.pats = append(a.pats, p)
	a.patRng = append(a.patRng, r)
	return PatIdx(len(a.pats) - 1)
}

func (a *Arenas) Ty(t Ty, r Range) TyIdx {
	a.tys = append(a.tys, t)
	a.tyRng = append(a.tyRng, r)
	return TyIdx(len(a.tys) - 1)
}

func (a *Arenas) Dec(d Dec, r Range) DecIdx {
	a.decs = append(a.decs, d)
	a.decRng = append(a.decRng, r)
	return DecIdx(len(a.decs) - 1)
}

func (a *Arenas) StrDec(d StrDec, r Range) StrDecIdx {
	a.strDecs = append(a.strDecs, d)
	a.strDecRng = append(a.strDecRng, r)
	return StrDecIdx(len(a.strDecs) - 1)
}

func (a *Arenas) StrExp(e StrExp, r Range) StrExpIdx {
	a.strExps = append(a.strExps, e)
	a.strExpRng = append(a.strExpRng, r)
	return StrExpIdx(len(a.strExps) - 1)
}

func (a *Arenas) SigExp(e SigExp, r Range) SigExpIdx {
	a.sigExps = append(a.sigExps, e)
	a.sigExpRng = append(a.sigExpRng, r)
	return SigExpIdx(len(a.sigExps) - 1)
}

func (a *Arenas) Spec(s Spec, r Range) SpecIdx {
	a.specs = append(a.specs, s)
	a.specRng = append(a.specRng, r)
	return SpecIdx(len(a.specs) - 1)
}

// Accessors. An index of 0 returns nil.

func (a *Arenas) GetExp(i ExpIdx) Exp       { return a.exps[i] }
func (a *Arenas) GetPat(i PatIdx) Pat       { return a.pats[i] }
func (a *Arenas) GetTy(i TyIdx) Ty          { return a.tys[i] }
func (a *Arenas) GetDec(i DecIdx) Dec       { return a.decs[i] }
func (a *Arenas) GetStrDec(i StrDecIdx) StrDec { return a.strDecs[i] }
func (a *Arenas) GetStrExp(i StrExpIdx) StrExp { return a.strExps[i] }
func (a *Arenas) GetSigExp(i SigExpIdx) SigExp { return a.sigExps[i] }
func (a *Arenas) GetSpec(i SpecIdx) Spec    { return a.specs[i] }

func (a *Arenas) ExpRange(i ExpIdx) Range       { return a.expRng[i] }
func (a *Arenas) PatRange(i PatIdx) Range       { return a.patRng[i] }
func (a *Arenas) TyRange(i TyIdx) Range         { return a.tyRng[i] }
func (a *Arenas) DecRange(i DecIdx) Range       { return a.decRng[i] }
func (a *Arenas) StrDecRange(i StrDecIdx) Range { return a.strDecRng[i] }
func (a *Arenas) StrExpRange(i StrExpIdx) Range { return a.strExpRng[i] }
func (a *Arenas) SigExpRange(i SigExpIdx) Range { return a.sigExpRng[i] }
func (a *Arenas) SpecRange(i SpecIdx) Range     { return a.specRng[i] }
